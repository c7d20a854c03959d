package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/ucl/log"
	"github.com/ardnew/ucl/ucl"
)

// Watch re-parses source files whenever they change on disk.
//
// All named files are parsed into a single document, later files overriding
// earlier ones key by key. The document (or the result of the configured
// expression) is printed after every quiet period following a change.
type Watch struct {
	Paths    []string      `arg:"" help:"Source files to watch"                                  name:"path" type:"existingfile"`
	Expr     string        `       help:"Expression to evaluate after each parse"                            short:"e"`
	Debounce time.Duration `       help:"Quiet period before re-parsing after a burst of events"                      default:"250ms"`
}

// Run executes the watch command. It blocks until the context is cancelled.
func (w *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.With(slog.String("command", "watch"))

	// Events carry the path the watch was registered with, so track files
	// by absolute path and watch their parent directories. Watching the
	// directory also catches editors that save by rename-over.
	files := make(map[string]struct{}, len(w.Paths))
	dirs := make(map[string]struct{})

	for _, path := range w.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return ErrWatcher.Wrap(err).With(slog.String("path", path))
		}

		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatcher.Wrap(err)
	}
	defer watcher.Close()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return ErrWatcher.Wrap(err).With(slog.String("dir", dir))
		}
	}

	logger.InfoContext(ctx, "watching sources",
		slog.Int("files", len(files)),
		slog.Duration("debounce", w.Debounce),
	)

	run := func() {
		if err := w.render(ctx, logger); err != nil {
			logger.ErrorContext(ctx, "parse failed", slog.Any("error", err))
		}
	}

	// Initial render before any change arrives.
	run()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.Debounce)
			timerC = timer.C

			return
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		timer.Reset(w.Debounce)
		timerC = timer.C
	}

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timerC:
			timerC = nil

			run()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if _, watched := files[event.Name]; !watched {
				continue
			}

			mask := fsnotify.Write | fsnotify.Create |
				fsnotify.Rename | fsnotify.Remove
			if event.Op&mask == 0 {
				continue
			}

			logger.TraceContext(ctx, "source changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			resetTimer()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}

// render parses every watched file into one document and prints it, or the
// result of the configured expression.
func (w *Watch) render(ctx context.Context, logger log.Logger) error {
	merged := make(ucl.Document)

	for _, path := range w.Paths {
		doc, err := ucl.ParseFile(ctx, path, ucl.WithLogger(logger))
		if err != nil {
			return err
		}

		maps.Copy(merged, doc)
	}

	logger.DebugContext(ctx, "document reloaded",
		slog.Int("keys", len(merged)))

	if w.Expr != "" {
		result, err := ucl.Query(ctx, merged, w.Expr, ucl.WithLogger(logger))
		if err != nil {
			return err
		}

		fmt.Println(ucl.FromNative(result))

		return nil
	}

	fmt.Print(ucl.Format(merged))

	return nil
}
