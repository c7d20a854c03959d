package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/ucl"
)

// Query evaluates an expression against parsed source documents.
//
// The expression language provides the document's top-level keys as
// variables alongside builtin helpers (env, file, path, mung, and the
// host identifiers platform, hostname, cwd).
type Query struct {
	Expr   string `arg:"" help:"Expression to evaluate" name:"expr"`
	Source string `       help:"Source input file or '-' for stdin" default:"-"    short:"f"`
	Output string `       help:"Output format."                     default:"text" enum:"text,json,yaml" short:"o"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := sourceReader(ctx, q.Source)
	if err != nil {
		return err
	}
	defer done()

	logger := log.With(slog.String("command", "query"))

	doc, err := ucl.ParseReader(ctx, reader, ucl.WithLogger(logger))
	if err != nil {
		return ucl.WrapError(err).
			With(slog.String("command", "query"))
	}

	result, err := ucl.Query(ctx, doc, q.Expr, ucl.WithLogger(logger))
	if err != nil {
		return ucl.WrapError(err).
			With(
				slog.String("command", "query"),
				slog.String("expression", q.Expr),
			)
	}

	return printResult(result, q.Output)
}

// printResult writes one query result to stdout in the chosen format.
func printResult(result any, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = os.Stdout.Write(append(data, '\n'))

		return err

	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = os.Stdout.Write(data)

		return err

	default:
		fmt.Println(ucl.FromNative(result))

		return nil
	}
}
