// Package trie implements the dynamically splitting trie/hash hybrid index:
// a byte-indexed tree whose leaves are hash buckets of dlines, so that a
// rarely-visited branch stays a cheap fixed-size hash table until it grows
// popular enough to earn the cost of a real trie node.
//
// A child slot holds the node interface, and a type switch recovers
// whether it is a trie node or a hash node — there is no need for a
// tagged-pointer trick to pack that bit into the slot itself.
package trie

import (
	"github.com/jcdavis/cobb2/internal/dline"
	"github.com/jcdavis/cobb2/internal/search"
	"github.com/jcdavis/cobb2/pkg/errors"
	"github.com/jcdavis/cobb2/pkg/options"
)

// node is either a *trieNode or a *hashNode. A nil node means the slot is
// unoccupied.
type node interface{}

// trieNode is a byte-indexed branch: up to 256 children, plus the dline of
// entries whose suffix ends exactly here.
type trieNode struct {
	children [256]node
	terminal dline.Dline
}

// hashNode is a fixed-width array of buckets, each an independent dline,
// plus a running total of entries across all buckets. A hash node starts
// life empty the moment a trie descent first needs a child slot that
// doesn't exist yet, and is replaced by a trieNode once it grows past the
// configured split threshold.
type hashNode struct {
	buckets []dline.Dline
	size    uint32
}

// Config holds the trie shape parameters that apply for the lifetime of a
// Root: how many buckets a hash node has, and how full a bucket array gets
// before the next insert splits it into a trie node.
type Config struct {
	SplitThreshold uint32
	BucketCount    uint32
}

// ConfigFromOptions extracts the trie Config embedded in a set of index
// options.
func ConfigFromOptions(o options.Options) Config {
	return Config{
		SplitThreshold: o.TrieOptions.SplitThreshold,
		BucketCount:    o.TrieOptions.BucketCount,
	}
}

// Root owns the top of one trie/hash hybrid index.
type Root struct {
	cfg  Config
	root *trieNode
}

// NewRoot creates an empty index with no presplit structure.
func NewRoot(cfg Config) *Root {
	return &Root{cfg: cfg, root: &trieNode{}}
}

// NewPresplit creates an index whose trie already has every byte in
// [low, high] built out to depth levels, so that a bulk load of strings in
// that byte range doesn't pay for hash-node splits on the hot path. depth
// 0 is equivalent to NewRoot.
func NewPresplit(cfg Config, low, high byte, depth int) *Root {
	root := &trieNode{}
	buildPresplit(root, low, high, depth)
	return &Root{cfg: cfg, root: root}
}

func buildPresplit(n *trieNode, low, high byte, depth int) {
	if depth <= 0 {
		return
	}
	for b := int(low); b <= int(high); b++ {
		child := &trieNode{}
		n.children[byte(b)] = child
		buildPresplit(child, low, high, depth-1)
	}
}

func newHashNode(bucketCount uint32) *hashNode {
	return &hashNode{buckets: make([]dline.Dline, bucketCount)}
}

// bucketIndex picks the hash-node bucket for the byte at pos, or bucket 0
// if pos has run past the end of s (the "suffix exhausted at this hash
// node" case).
func bucketIndex(s []byte, pos int, bucketCount uint32) int {
	if pos >= len(s) {
		return 0
	}
	return int(s[pos]) % int(bucketCount)
}

// Upsert inserts or re-scores the suffix normalized[start:] into the trie,
// creating the backing global record on first use. full and normalized
// describe the whole record being indexed; state is shared across every
// suffix of one logical upsert.
func (r *Root) Upsert(full, normalized []byte, start int, score uint32, state *dline.State) error {
	if start < 0 || start > len(normalized) {
		return errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "suffix start out of range",
		).WithField("start").WithRule("range")
	}
	return r.upsertFrom(r.root, full, normalized, start, start, score, state)
}

func (r *Root) upsertFrom(current *trieNode, full, normalized []byte, start, pos int, score uint32, state *dline.State) error {
	for pos < len(normalized) {
		b := normalized[pos]
		switch c := current.children[b].(type) {
		case nil:
			hn := newHashNode(r.cfg.BucketCount)
			current.children[b] = hn
			return r.upsertHash(current, b, hn, full, normalized, start, pos+1, score, state)
		case *hashNode:
			return r.upsertHash(current, b, c, full, normalized, start, pos+1, score, state)
		case *trieNode:
			current = c
			pos++
		}
	}

	newTerminal, err := dline.Upsert(current.terminal, full, normalized, start, score, state)
	if err != nil {
		return err
	}
	current.terminal = newTerminal
	return nil
}

func (r *Root) upsertHash(parent *trieNode, parentByte byte, hn *hashNode, full, normalized []byte, start, pos int, score uint32, state *dline.State) error {
	idx := bucketIndex(normalized, pos, r.cfg.BucketCount)
	existing := hn.buckets[idx]

	dline.ResolveMode(existing, normalized, start, state)
	wasInsert := state.Mode == dline.ModeInsert

	if wasInsert && hn.size >= r.cfg.SplitThreshold {
		split, err := r.splitHashNode(hn, pos-start)
		if err != nil {
			return err
		}
		parent.children[parentByte] = split
		return r.upsertFrom(split, full, normalized, start, pos, score, state)
	}

	newBucket, err := dline.Upsert(existing, full, normalized, start, score, state)
	if err != nil {
		return err
	}
	hn.buckets[idx] = newBucket
	if wasInsert {
		hn.size++
	}
	return nil
}

// splitHashNode replaces an overflowing hash node with a trie node whose
// children absorb every one of its entries via re-upsert. Every entry is
// re-inserted with a state pre-marked ModeInsert holding the entry's
// existing global record, so the re-insert never allocates a new record
// or rescans for a content match.
//
// depth is how many bytes of the suffix the hash node being split had
// already consumed before any of its entries were stored (pos-start at the
// call site). Re-insertion must resume descent from entryStart+depth, not
// from entryStart itself: entryStart is where the suffix starts within its
// own record, not where the replacement trie node sits along that suffix,
// and resuming from the wrong byte re-examines already-consumed bytes and
// wires the reinserted entry under the wrong child.
//
// If re-insertion ever does return an error (in practice it cannot, since
// every re-inserted entry is already valid data that was accepted once
// before), that error is returned as-is and the caller's hash node is left
// in place, since the new trie node is never published into the parent
// until this function returns successfully.
func (r *Root) splitHashNode(hn *hashNode, depth int) (*trieNode, error) {
	replacement := &trieNode{}

	for _, bucket := range hn.buckets {
		var iterErr error
		dline.Iterate(bucket, func(e dline.Entry) {
			if iterErr != nil {
				return
			}
			entryStart := e.Ref.Len() - len(e.Suffix)
			reinsertState := &dline.State{Mode: dline.ModeInsert, Ref: e.Ref}
			iterErr = r.upsertFrom(replacement, e.Ref.Full, e.Ref.Normalized, entryStart, entryStart+depth, e.Score, reinsertState)
		})
		if iterErr != nil {
			return nil, iterErr
		}
	}

	return replacement, nil
}

// Remove deletes the entry for the suffix normalized[start:] from the
// trie. state is shared across every suffix of one logical remove so that
// suffixes after the first can match by pointer identity.
func (r *Root) Remove(normalized []byte, start int, state *dline.State) error {
	return r.removeFrom(r.root, normalized, start, start, state)
}

func (r *Root) removeFrom(current *trieNode, normalized []byte, start, pos int, state *dline.State) error {
	for pos < len(normalized) {
		b := normalized[pos]
		switch c := current.children[b].(type) {
		case nil:
			return errors.NewKeyNotFoundError(string(normalized[start:]))
		case *hashNode:
			idx := bucketIndex(normalized, pos+1, r.cfg.BucketCount)
			newBucket, err := dline.Remove(c.buckets[idx], normalized, start, state)
			if err != nil {
				return err
			}
			c.buckets[idx] = newBucket
			c.size--
			return nil
		case *trieNode:
			current = c
			pos++
		}
	}

	newTerminal, err := dline.Remove(current.terminal, normalized, start, state)
	if err != nil {
		return err
	}
	current.terminal = newTerminal
	return nil
}

// Search descends the trie byte-by-byte along query until query is
// exhausted, a child slot is absent, or a hash node is reached, then
// harvests every entry at or beneath that frontier whose suffix begins
// with query, merging the harvested branches into a single deduplicated,
// priority-ordered list of at most maxResults entries.
func (r *Root) Search(query []byte, minScore uint32, maxResults int) []dline.Result {
	return r.searchFrom(r.root, query, 0, minScore, maxResults)
}

func (r *Root) searchFrom(current *trieNode, query []byte, pos int, minScore uint32, maxResults int) []dline.Result {
	for pos < len(query) {
		b := query[pos]
		switch c := current.children[b].(type) {
		case nil:
			return nil
		case *hashNode:
			return r.harvestHash(c, query, pos+1, minScore, maxResults)
		case *trieNode:
			current = c
			pos++
		}
	}

	return r.harvestTrie(current, minScore, maxResults)
}

// harvestTrie gathers every entry reachable from n — its own terminal
// dline plus every descendant trie and hash node — once the query has
// already been fully matched against the path leading to n.
func (r *Root) harvestTrie(n *trieNode, minScore uint32, maxResults int) []dline.Result {
	results := dline.Search(n.terminal, nil, minScore, maxResults)

	for _, child := range n.children {
		if child == nil {
			continue
		}

		var childResults []dline.Result
		switch c := child.(type) {
		case *trieNode:
			childResults = r.harvestTrie(c, minScore, maxResults)
		case *hashNode:
			childResults = r.harvestHashFull(c, minScore, maxResults)
		}

		results = search.Merge(results, childResults, maxResults)
	}

	return results
}

// harvestHash scans a hash node reached while query bytes remain: only the
// bucket for the next query byte can hold matches, so only that bucket's
// dline is scanned, against the full query (not just the remaining
// suffix), since bucket selection only guarantees a hash match, not byte
// equality.
func (r *Root) harvestHash(hn *hashNode, query []byte, pos int, minScore uint32, maxResults int) []dline.Result {
	if pos >= len(query) {
		return r.harvestHashFull(hn, minScore, maxResults)
	}
	idx := bucketIndex(query, pos, r.cfg.BucketCount)
	return dline.Search(hn.buckets[idx], query, minScore, maxResults)
}

// harvestHashFull scans every bucket of a hash node reached with the query
// already fully matched, merging their dlines together.
func (r *Root) harvestHashFull(hn *hashNode, minScore uint32, maxResults int) []dline.Result {
	var results []dline.Result
	for _, bucket := range hn.buckets {
		bucketResults := dline.Search(bucket, nil, minScore, maxResults)
		results = search.Merge(results, bucketResults, maxResults)
	}
	return results
}
