package ucl

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

var (
	// valueCache stores top-level values keyed by (source_hash:key).
	// This allows lookup without keeping whole documents in memory.
	valueCache sync.Map

	// sourceRegistry tracks parse state by source hash.
	sourceRegistry sync.Map
)

// cacheState tracks the one-time parse of a source and the top-level
// keys it produced.
type cacheState struct {
	once sync.Once
	keys []string
	err  error
}

// hashFingerprint encodes the settings fingerprint using gob and hashes
// it with xxh3.
func hashFingerprint(fp fingerprint) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(fp.baseDir)
	_ = enc.Encode(fp.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// parseCached parses a source through the global cache. The first parse
// of a given source and fingerprint stores each top-level value; later
// calls reassemble the document from the stored values. Returned
// documents are deep copies, so callers may mutate them freely.
//
// The cache key covers the source text and the comparable settings
// only. Callers replacing the environment or file hooks should not
// enable caching unless the hooks are pure.
func parseCached(
	ctx context.Context,
	source string,
	cfg config,
) (Document, error) {
	sourceHash := xxh3.Hash([]byte(source))
	fpHash := hashFingerprint(cfg.fingerprint())
	sourceKey := strconv.FormatUint(sourceHash^fpHash, 36)

	entry := new(cacheState)
	value, hit := sourceRegistry.LoadOrStore(sourceKey, entry)

	state, ok := value.(*cacheState)
	if !ok {
		return nil, ErrInvalidValueType.
			With(slog.String("issue", "invalid state type in cache"))
	}

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("fingerprint_hash", strconv.FormatUint(fpHash, 16)),
		slog.Bool("cache_hit", hit))

	state.once.Do(func() {
		doc, err := parse(ctx, source, cfg)
		if err != nil {
			state.err = WrapError(err).
				With(slog.Int("source_length", len(source)))

			return
		}

		state.keys = slices.Sorted(maps.Keys(doc))
		for _, key := range state.keys {
			valueCache.Store(sourceKey+":"+key, doc[key])
		}
	})

	if state.err != nil {
		return nil, state.err
	}

	doc := make(Document, len(state.keys))

	for _, key := range state.keys {
		if cached, ok := valueCache.Load(sourceKey + ":" + key); ok {
			if val, ok := cached.(Value); ok {
				doc[key] = val.clone()
			}
		}
	}

	return doc, nil
}

// ClearCache removes all cached values and source state.
// This is primarily useful for testing or to reclaim memory.
func ClearCache() {
	valueCache = sync.Map{}
	sourceRegistry = sync.Map{}
}
