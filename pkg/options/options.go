// Package options provides data structures and functions for configuring
// the autocompletion index. It defines the tunables that control the
// trie/hash hybrid's shape and the search driver's defaults, following the
// same functional-options pattern used throughout this module: a validated
// struct built up by chainable OptionFunc values, each silently ignoring
// out-of-range input rather than returning an error.
package options

// Defines configurable parameters for the trie/hash hybrid structure that
// backs the index.
type trieOptions struct {
	// SplitThreshold is the number of entries in a hash node (across all
	// of its buckets) at or above which the next insert (never an update)
	// into that hash node triggers its replacement with a trie node.
	//
	//  - Default: 15000
	//  - Minimum: 1
	SplitThreshold uint32 `json:"splitThreshold"`

	// BucketCount is the fixed number of buckets B in every hash node.
	// An entry's bucket is hash(next unmatched byte) mod B, or bucket 0
	// if the suffix is exhausted at that node.
	//
	//  - Default: 64
	//  - Minimum: 1
	BucketCount uint32 `json:"bucketCount"`

	// PresplitLow and PresplitHigh describe the inclusive byte range
	// pre-built into trie nodes at construction time, avoiding hot-path
	// splits during bulk load. The default range is [0, 0], which covers
	// byte 0 only; whether presplitting happens is decided by
	// PresplitDepth alone.
	PresplitLow  byte `json:"presplitLow"`
	PresplitHigh byte `json:"presplitHigh"`

	// PresplitDepth is how many levels deep the presplit range is built.
	// Depth 0 disables presplitting regardless of the range.
	//
	//  - Default: 0
	//  - Maximum: 4 (an ASCII-width range at depth 5 exceeds most
	//    reasonable memory envelopes; see the presplit open question)
	PresplitDepth int `json:"presplitDepth"`
}

// Defines configurable parameters for the search driver.
type searchOptions struct {
	// MaxResults is K, the default maximum number of deduplicated
	// results returned by a search when the caller does not override it.
	//
	//  - Default: 10
	//  - Minimum: 1
	MaxResults int `json:"maxResults"`

	// MinScore is the default score floor below which entries are
	// excluded from search results.
	//
	//  - Default: 0
	MinScore uint32 `json:"minScore"`
}

// Defines the byte classes the parser uses to decide which suffixes of an
// indexed string get their own trie entry.
type parserOptions struct {
	// StartBytes unconditionally start a new suffix wherever they occur.
	//
	//  - Default: empty
	StartBytes []byte `json:"startBytes"`

	// MiddleBytes start a new suffix at the first byte following a run
	// of them, so a separator class here produces word-boundary
	// suffixing without indexing every character position.
	//
	//  - Default: " \t-_,./"
	MiddleBytes []byte `json:"middleBytes"`
}

// Options defines the configuration parameters for the autocompletion
// index: trie shape, search defaults, and parser byte classes.
type Options struct {
	TrieOptions   *trieOptions   `json:"trieOptions"`
	SearchOptions *searchOptions `json:"searchOptions"`
	ParserOptions *parserOptions `json:"parserOptions"`
}

// OptionFunc is a function type that modifies the index's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.TrieOptions = opts.TrieOptions
		o.SearchOptions = opts.SearchOptions
		o.ParserOptions = opts.ParserOptions
	}
}

// WithSplitThreshold sets the hash-node bucket size that triggers a split.
func WithSplitThreshold(threshold uint32) OptionFunc {
	return func(o *Options) {
		if threshold >= MinSplitThreshold {
			o.TrieOptions.SplitThreshold = threshold
		}
	}
}

// WithBucketCount sets the number of buckets B in every hash node.
func WithBucketCount(count uint32) OptionFunc {
	return func(o *Options) {
		if count >= MinBucketCount {
			o.TrieOptions.BucketCount = count
		}
	}
}

// WithPresplit sets the byte range and depth pre-built into trie nodes at
// construction time. A depth of 0 leaves presplitting disabled.
func WithPresplit(low, high byte, depth int) OptionFunc {
	return func(o *Options) {
		if low > high || depth < 0 || depth > MaxPresplitDepth {
			return
		}
		o.TrieOptions.PresplitLow = low
		o.TrieOptions.PresplitHigh = high
		o.TrieOptions.PresplitDepth = depth
	}
}

// WithMaxResults sets the default K used by searches that don't override it.
func WithMaxResults(k int) OptionFunc {
	return func(o *Options) {
		if k > 0 {
			o.SearchOptions.MaxResults = k
		}
	}
}

// WithMinScore sets the default score floor used by searches that don't
// override it.
func WithMinScore(score uint32) OptionFunc {
	return func(o *Options) {
		o.SearchOptions.MinScore = score
	}
}

// WithStartChars sets the bytes that unconditionally start a new suffix.
// An empty string leaves the class empty.
func WithStartChars(chars string) OptionFunc {
	return func(o *Options) {
		o.ParserOptions.StartBytes = []byte(chars)
	}
}

// WithMiddleChars sets the bytes whose run-ends start a new suffix. An
// empty string leaves the class empty, so the only suffix boundaries are
// offset 0 and every start-class byte.
func WithMiddleChars(chars string) OptionFunc {
	return func(o *Options) {
		o.ParserOptions.MiddleBytes = []byte(chars)
	}
}
