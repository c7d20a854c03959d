package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/ucl"
)

// Eval resolves a reference from parsed source documents.
type Eval struct {
	Ref    string `arg:"" help:"Reference to resolve (prints the whole document when omitted)" name:"ref" optional:""`
	Source string `       help:"Source input file or '-' for stdin"                                        default:"-" short:"f"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	reader, done, err := sourceReader(ctx, e.Source)
	if err != nil {
		return err
	}
	defer done()

	doc, err := ucl.ParseReader(ctx, reader,
		ucl.WithLogger(log.With(slog.String("command", "eval"))),
	)
	if err != nil {
		return ucl.WrapError(err).
			With(slog.String("command", "eval"))
	}

	// Without a reference, print the entire document
	if e.Ref == "" {
		fmt.Print(ucl.Format(doc))

		return nil
	}

	// References support accessors, e.g. "data.users[0].name"
	val, err := doc.Resolve(e.Ref)
	if err != nil {
		return ucl.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("reference", e.Ref),
			)
	}

	fmt.Println(val)

	return nil
}
