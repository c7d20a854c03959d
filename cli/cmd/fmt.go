package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/ucl"
)

// Fmt reads input, parses it, and rewrites it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical native syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native rewrites input in canonical native syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	fmt.Print(ucl.Format(doc))

	return nil
}

// JSON reads input, parses it, and outputs as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(
		doc.Native(), "", strings.Repeat(" ", j.Indent))
	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	_, err = os.Stdout.Write(append(data, '\n'))

	return err
}

// YAML reads input, parses it, and outputs as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	data, err := yaml.MarshalWithOptions(
		doc.Native(),
		yaml.Indent(y.Indent),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = os.Stdout.Write(data)

	return err
}

// parseSource parses the named input for one of the fmt subcommands.
func parseSource(
	ctx context.Context,
	source, format string,
) (ucl.Document, error) {
	reader, done, err := sourceReader(ctx, source)
	if err != nil {
		return nil, err
	}
	defer done()

	doc, err := ucl.ParseReader(ctx, reader,
		ucl.WithLogger(log.With(slog.String("command", "fmt"))),
	)
	if err != nil {
		return nil, ucl.WrapError(err).
			With(slog.String("format", format))
	}

	return doc, nil
}
