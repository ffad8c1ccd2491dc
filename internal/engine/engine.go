// Package engine provides the core coordinator for the autocompletion
// index.
//
// The engine is the central entry point used by the public façade
// (pkg/autocomplete): it owns the configured index, passes the index's
// structured pkg/errors values through to the caller, and layers lifecycle
// logging and closed-state tracking on top of the raw index.
package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jcdavis/cobb2/internal/index"
	pkgerrors "github.com/jcdavis/cobb2/pkg/errors"
	"github.com/jcdavis/cobb2/pkg/options"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations on
	// a closed engine.
	ErrEngineClosed = errors.New("operation failed: cannot access closed engine")
)

// Engine represents the coordinator that owns the index and exposes the
// Upsert/Remove/Search/Close contract to the public façade.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool
	index   *index.Index
}

// Config holds all the parameters needed to initialize a new Engine
// instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New creates and initializes a new Engine instance with the provided
// configuration.
func New(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, pkgerrors.NewValidationError(
			nil, pkgerrors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required")
	}

	idx, err := index.New(ctx, &index.Config{
		Options: *config.Options,
		Logger:  config.Logger.Named("index"),
	})
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("engine started",
		"splitThreshold", config.Options.TrieOptions.SplitThreshold,
		"maxResults", config.Options.SearchOptions.MaxResults,
	)

	return &Engine{
		options: config.Options,
		log:     config.Logger,
		index:   idx,
	}, nil
}

// Upsert inserts or re-scores text at score, indexing every suffix the
// configured parser selects for it.
func (e *Engine) Upsert(ctx context.Context, text []byte, score uint32) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	if err := e.index.Upsert(text, score); err != nil {
		e.log.Warnw("upsert failed", "error", err)
		return err
	}

	e.log.Debugw("upsert applied", "length", len(text), "score", score)
	return nil
}

// Remove deletes text from the index.
func (e *Engine) Remove(ctx context.Context, text []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	if err := e.index.Remove(text); err != nil {
		e.log.Warnw("remove failed", "error", err)
		return err
	}

	e.log.Debugw("remove applied", "length", len(text))
	return nil
}

// Result is one ranked match returned by Search, carrying enough of the
// matched record's identity for a caller to render it without reaching
// back into the index.
type Result struct {
	Full       []byte
	Score      uint32
	Offset     int
	SuffixLen  int
	Normalized int
}

// Search returns up to K deduplicated matches for query, scoring at or
// above the engine's configured minimum score, where K defaults to the
// engine's configured maximum unless maxResults overrides it with a
// positive value.
func (e *Engine) Search(ctx context.Context, query []byte, maxResults int) ([]Result, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	k := e.options.SearchOptions.MaxResults
	if maxResults > 0 {
		k = maxResults
	}

	matches, err := e.index.Search(query, e.options.SearchOptions.MinScore, k)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Full:       m.Ref.Full,
			Score:      m.Score,
			Offset:     m.Offset,
			SuffixLen:  m.SuffixLen,
			Normalized: m.Ref.Len(),
		}
	}

	e.log.Debugw("search completed", "matches", len(results), "maxResults", k)
	return results, nil
}

// Close gracefully shuts down the engine.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.log.Infow("closing engine")
	return e.index.Close()
}
