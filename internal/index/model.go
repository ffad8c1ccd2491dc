package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jcdavis/cobb2/internal/parser"
	"github.com/jcdavis/cobb2/internal/trie"
	"github.com/jcdavis/cobb2/pkg/options"
)

// Index owns one trie/hash hybrid structure and the parser configuration
// used to decide which suffixes of an indexed string get their own trie
// entry. It is safe for concurrent use: every mutating operation holds mu
// for the duration of its (potentially multi-suffix) work, and searches
// take the read lock.
type Index struct {
	log     *zap.SugaredLogger
	root    *trie.Root
	classes *parser.Classes
	opts    options.Options
	mu      sync.RWMutex
	closed  atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize
// an Index.
type Config struct {
	Options options.Options
	Logger  *zap.SugaredLogger
}
