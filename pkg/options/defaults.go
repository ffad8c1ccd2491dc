package options

const (
	// DefaultSplitThreshold is the number of entries in a hash node at or
	// above which the next insert triggers a split into a trie node.
	DefaultSplitThreshold uint32 = 15000

	// MinSplitThreshold is the smallest accepted split threshold. A
	// threshold of 0 would split on the very first insert into any
	// hash node, which defeats the purpose of having hash nodes at all.
	MinSplitThreshold uint32 = 1

	// DefaultBucketCount is the default number of buckets B in every
	// hash node.
	DefaultBucketCount uint32 = 64

	// MinBucketCount is the smallest accepted bucket count.
	MinBucketCount uint32 = 1

	// MaxPresplitDepth bounds how deep a presplit range may be built.
	// A full ASCII-width range at greater depths allocates more trie
	// nodes than most deployments budget for; see the presplit open
	// question.
	MaxPresplitDepth = 4

	// DefaultMaxResults is the default K returned by a search.
	DefaultMaxResults = 10

	// DefaultMinScore is the default score floor applied to searches.
	DefaultMinScore uint32 = 0

	// DefaultMiddleBytes is the default separator class: whitespace and
	// common punctuation word separators, producing word-boundary
	// suffixing without indexing every character position in a word.
	DefaultMiddleBytes = " \t-_,./"
)

// Holds the default configuration settings for an index instance.
var defaultOptions = Options{
	TrieOptions: &trieOptions{
		SplitThreshold: DefaultSplitThreshold,
		BucketCount:    DefaultBucketCount,
		PresplitLow:    0,
		PresplitHigh:   0,
		PresplitDepth:  0,
	},
	SearchOptions: &searchOptions{
		MaxResults: DefaultMaxResults,
		MinScore:   DefaultMinScore,
	},
	ParserOptions: &parserOptions{
		StartBytes:  nil,
		MiddleBytes: []byte(DefaultMiddleBytes),
	},
}

// NewDefaultOptions returns a fresh copy of the default configuration.
func NewDefaultOptions() Options {
	opts := defaultOptions
	trieCopy := *defaultOptions.TrieOptions
	searchCopy := *defaultOptions.SearchOptions
	parserCopy := *defaultOptions.ParserOptions
	opts.TrieOptions = &trieCopy
	opts.SearchOptions = &searchCopy
	opts.ParserOptions = &parserCopy
	return opts
}
