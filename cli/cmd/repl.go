package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ucl/cli/cmd/repl"
	"github.com/ardnew/ucl/log"
)

// Repl starts an interactive read-eval-print loop over the parsed sources.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir := ktx.Model.Vars()[CacheIdentifier]

	return repl.Run(ctx, sourceFilesFrom(ctx), cacheDir,
		log.With(slog.String("component", "repl")))
}
