// Package autocomplete provides an in-memory prefix-and-substring
// autocompletion index: score-ranked suggestions over a growing corpus of
// strings, backed by a trie/hash hybrid that never touches disk.
//
// It combines a dynamically splitting trie/hash index with a
// token-boundary parser that decides which suffixes of each indexed
// string are queryable, so that a search for any substring — not just a
// literal prefix of the original string — resolves to a trie prefix
// search. It is designed for applications needing fast, ranked
// "type-ahead" suggestions, such as search boxes and command palettes,
// aiming to provide a simple, efficient, in-process index for Go
// applications.
package autocomplete

import (
	"context"

	"github.com/jcdavis/cobb2/internal/engine"
	"github.com/jcdavis/cobb2/pkg/logger"
	"github.com/jcdavis/cobb2/pkg/options"
)

// Result is one ranked match returned by Search.
type Result struct {
	// Text is the original, non-normalized bytes of the matched record.
	Text string
	// Score is the record's current score.
	Score uint32
	// MatchOffset is the byte offset within Text where the matched
	// suffix begins.
	MatchOffset int
	// NormalizedLength is the length of the record's normalized form
	// (always equal to len(Text), since normalization preserves length).
	NormalizedLength int
}

// Instance represents one autocompletion index.
//
// Instance is the primary entry point for interacting with the index,
// providing methods for upserting, searching, and removing entries.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// NewInstance creates and initializes a new autocompletion Instance.
// service names the logger; opts overrides the default trie shape and
// search behavior.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	eng, err := engine.New(ctx, &engine.Config{
		Logger:  log,
		Options: &defaultOpts,
	})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Upsert inserts text into the index, or re-scores it if it is already
// present. Every suffix of text that the configured token-boundary parser
// selects becomes independently searchable.
func (i *Instance) Upsert(ctx context.Context, text string, score uint32) error {
	return i.engine.Upsert(ctx, []byte(text), score)
}

// Remove deletes text from the index.
func (i *Instance) Remove(ctx context.Context, text string) error {
	return i.engine.Remove(ctx, []byte(text))
}

// Search returns up to the configured K deduplicated matches for query,
// ranked by score, then by recency of insertion, then by longest matched
// suffix.
func (i *Instance) Search(ctx context.Context, query string) ([]Result, error) {
	matches, err := i.engine.Search(ctx, []byte(query), 0)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(matches))
	for idx, m := range matches {
		results[idx] = Result{
			Text:             string(m.Full),
			Score:            m.Score,
			MatchOffset:      m.Offset,
			NormalizedLength: m.Normalized,
		}
	}
	return results, nil
}

// Close gracefully shuts down the Instance, releasing its index.
func (i *Instance) Close(ctx context.Context) error {
	return i.engine.Close()
}
