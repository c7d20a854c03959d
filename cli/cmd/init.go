package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/profile"
	"github.com/ardnew/ucl/ucl"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config namespace undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	doc := i.buildDocument(ctx)

	_, err = io.WriteString(file, ucl.Format(doc))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildDocument constructs the config document from current flag values.
func (i *Init) buildDocument(ctx context.Context) ucl.Document {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	doc := make(ucl.Document)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := i.flagValue(ctx, flag.Name)
		if ok {
			doc.Set(val, ConfigIdentifier, flag.Name)
		}
	}

	return doc
}

// flagValue returns the document value for a CLI flag, or false if unset.
func (i *Init) flagValue(
	ctx context.Context,
	name string,
) (ucl.Value, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return ucl.Null(), false
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])
	if val == nil {
		return ucl.Null(), false
	}

	switch v := val.(type) {
	case bool:
		return ucl.Bool(v), true

	case string:
		if v == "" {
			return ucl.Null(), false
		}

		return ucl.String(v), true

	case int:
		return ucl.Number(float64(v)), true

	case int64:
		return ucl.Number(float64(v)), true

	case uint:
		return ucl.Number(float64(v)), true

	case uint64:
		return ucl.Number(float64(v)), true

	case float32:
		return ucl.Number(float64(v)), true

	case float64:
		return ucl.Number(v), true

	case []string:
		if len(v) == 0 {
			return ucl.Null(), false
		}

		items := make([]ucl.Value, len(v))
		for i, s := range v {
			items[i] = ucl.String(s)
		}

		return ucl.Sequence(items...), true

	case []int:
		if len(v) == 0 {
			return ucl.Null(), false
		}

		items := make([]ucl.Value, len(v))
		for i, n := range v {
			items[i] = ucl.Number(float64(n))
		}

		return ucl.Sequence(items...), true

	case []int64:
		if len(v) == 0 {
			return ucl.Null(), false
		}

		items := make([]ucl.Value, len(v))
		for i, n := range v {
			items[i] = ucl.Number(float64(n))
		}

		return ucl.Sequence(items...), true

	case []float64:
		if len(v) == 0 {
			return ucl.Null(), false
		}

		items := make([]ucl.Value, len(v))
		for i, n := range v {
			items[i] = ucl.Number(n)
		}

		return ucl.Sequence(items...), true

	case []bool:
		if len(v) == 0 {
			return ucl.Null(), false
		}

		items := make([]ucl.Value, len(v))
		for i, b := range v {
			items[i] = ucl.Bool(b)
		}

		return ucl.Sequence(items...), true

	default:
		return ucl.String(fmt.Sprint(v)), true
	}
}
