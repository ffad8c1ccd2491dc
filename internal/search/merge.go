// Package search implements the deduplicating top-K merge that combines
// the match lists produced by separate dline scans (a trie node's own
// terminal dline plus each of its children's harvests) into a single
// priority-ordered, globally deduplicated result list.
package search

import (
	"github.com/jcdavis/cobb2/internal/dline"
	"github.com/jcdavis/cobb2/internal/record"
)

// Merge combines two result lists, each already sorted by the composite
// (score DESC, global-ref DESC, suffix-length DESC) priority, into a
// single list of at most k results in the same order. A global record
// appearing in both inputs — which happens when two of a record's
// suffixes both fall under the harvested subtree — is kept only once, at
// its highest-priority occurrence.
//
// Because both inputs are sorted and k bounds the output, Merge stops
// consuming either input as soon as k results have been produced: this is
// the "top-K tightening" that keeps a multi-way harvest from having to
// materialize every match before trimming to K.
func Merge(a, b []dline.Result, k int) []dline.Result {
	if k <= 0 {
		return nil
	}

	out := make([]dline.Result, 0, k)
	seen := make(map[*record.Record]bool, k)

	i, j := 0, 0
	for len(out) < k && (i < len(a) || j < len(b)) {
		var next dline.Result
		switch {
		case i >= len(a):
			next = b[j]
			j++
		case j >= len(b):
			next = a[i]
			i++
		case higherPriority(a[i], b[j]):
			next = a[i]
			i++
		default:
			next = b[j]
			j++
		}

		if seen[next.Ref] {
			continue
		}
		seen[next.Ref] = true
		out = append(out, next)
	}

	return out
}

// higherPriority reports whether a sorts strictly before b under the same
// composite key dline uses to order entries.
func higherPriority(a, b dline.Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Ref.ID() != b.Ref.ID() {
		return a.Ref.ID() > b.Ref.ID()
	}
	return a.SuffixLen > b.SuffixLen
}
