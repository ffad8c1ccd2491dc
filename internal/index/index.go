// Package index drives suffix selection and trie upsert/remove/search for
// one autocompletion index: it is the layer that turns "upsert this
// string at this score" into the N individual per-suffix trie operations
// that ingesting one record requires as a single logical step.
package index

import (
	"context"
	stdErrors "errors"

	"github.com/jcdavis/cobb2/internal/dline"
	"github.com/jcdavis/cobb2/internal/parser"
	"github.com/jcdavis/cobb2/internal/trie"
	"github.com/jcdavis/cobb2/pkg/errors"
)

var (
	// ErrIndexClosed is returned when attempting to perform operations on
	// a closed index.
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates and initializes a new Index instance configured according to
// the provided parameters. The returned Index is immediately ready for
// concurrent use.
func New(ctx context.Context, config *Config) (*Index, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "index configuration is required",
		).WithField("config").WithRule("required")
	}
	if config.Options.ParserOptions == nil ||
		(len(config.Options.ParserOptions.StartBytes) == 0 && len(config.Options.ParserOptions.MiddleBytes) == 0) {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "index requires at least one start or middle byte class",
		).WithField("ParserOptions").WithRule("required")
	}

	trieCfg := trie.ConfigFromOptions(config.Options)

	var root *trie.Root
	if config.Options.TrieOptions.PresplitDepth > 0 {
		root = trie.NewPresplit(
			trieCfg,
			config.Options.TrieOptions.PresplitLow,
			config.Options.TrieOptions.PresplitHigh,
			config.Options.TrieOptions.PresplitDepth,
		)
	} else {
		root = trie.NewRoot(trieCfg)
	}

	return &Index{
		log:     config.Logger,
		root:    root,
		classes: parser.NewClasses(config.Options.ParserOptions.StartBytes, config.Options.ParserOptions.MiddleBytes),
		opts:    config.Options,
	}, nil
}

// Close marks the index as closed. Further Upsert, Remove, and Search
// calls return ErrIndexClosed. The underlying trie is left for the
// garbage collector once the last reference to the Index drops.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("closing index")
	return nil
}

// Upsert normalizes full, selects its suffix offsets via the configured
// parser, and upserts score at every one of them, sharing a single
// dline.State so the global record is materialized at most once and every
// suffix after the first resolves insert-vs-update by pointer identity.
//
// If a suffix upsert fails partway through, every suffix already applied
// is unwound (removed) before the error is returned, so a failed Upsert
// never leaves a partially indexed record behind.
func (idx *Index) Upsert(full []byte, score uint32) error {
	if idx.closed.Load() {
		return ErrIndexClosed
	}
	if len(full) == 0 {
		return parser.NewEmptyInputError()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	normalized := parser.Normalize(full)
	starts := idx.classes.Suffixes(normalized)

	state := &dline.State{}
	applied := make([]int, 0, len(starts))

	for _, start := range starts {
		if err := idx.root.Upsert(full, normalized, start, score, state); err != nil {
			idx.unwind(normalized, applied, state)
			return err
		}
		applied = append(applied, start)
	}

	return nil
}

// unwind removes every suffix in applied, using state's already-resolved
// record reference so each removal is a pointer-identity match rather
// than a content scan. Errors here are logged, not returned: the caller
// already has the real error from the failed suffix, and an unwind
// failure here would only happen if the trie were already inconsistent.
func (idx *Index) unwind(normalized []byte, applied []int, state *dline.State) {
	if len(applied) == 0 {
		return
	}

	unwindState := &dline.State{Ref: state.Ref}
	for _, start := range applied {
		if err := idx.root.Remove(normalized, start, unwindState); err != nil {
			idx.log.Warnw("failed to unwind partially applied upsert", "error", err, "suffixStart", start)
		}
	}
}

// Remove deletes every suffix of full from the index. full is normalized
// and split into the same suffix offsets Upsert would have used.
func (idx *Index) Remove(full []byte) error {
	if idx.closed.Load() {
		return ErrIndexClosed
	}
	if len(full) == 0 {
		return parser.NewEmptyInputError()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	normalized := parser.Normalize(full)
	starts := idx.classes.Suffixes(normalized)

	state := &dline.State{}
	for _, start := range starts {
		if err := idx.root.Remove(normalized, start, state); err != nil {
			return err
		}
	}

	return nil
}

// Search normalizes query and returns up to maxResults deduplicated
// matches scoring at or above minScore, ordered by the same priority used
// to order every dline. An empty query is legal, unlike an empty Upsert or
// Remove argument: it matches every indexed suffix, letting a caller list
// the top-scoring entries with no typed input yet.
func (idx *Index) Search(query []byte, minScore uint32, maxResults int) ([]dline.Result, error) {
	if idx.closed.Load() {
		return nil, ErrIndexClosed
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	normalized := parser.Normalize(query)
	return idx.root.Search(normalized, minScore, maxResults), nil
}
