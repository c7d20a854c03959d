package ucl

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"
)

// ParseReader parses a document from an io.Reader.
// The reader is wrapped with asynchronous read-ahead so input can be
// pre-fetched while earlier chunks are buffered.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}
