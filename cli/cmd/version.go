package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/ardnew/ucl/pkg"
)

// Version prints version and build information.
type Version struct {
	JSON bool `help:"Print as JSON" short:"j"`
}

// Run executes the version command.
func (v *Version) Run(_ context.Context) error {
	info := struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Go      string `json:"go"`
		OS      string `json:"os"`
		Arch    string `json:"arch"`
	}{
		Name:    pkg.Name,
		Version: strings.TrimSpace(pkg.Version),
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if v.JSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		fmt.Println(string(data))

		return nil
	}

	fmt.Printf("%s %s (%s %s/%s)\n",
		info.Name, info.Version, info.Go, info.OS, info.Arch)

	return nil
}
