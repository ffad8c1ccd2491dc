// Package dline implements the data line: the densely packed, immutable,
// sorted sequence of (global-ref, score, suffix-bytes) entries that backs
// every trie terminal and every hash-node bucket.
//
// Every mutation (Upsert, Remove) returns a freshly built Dline; the caller
// swaps the pointer and lets the old slice go. The original C
// implementation this is grounded on (dline.c) gets that immutability from
// realloc-and-copy; a Go slice gives it to us directly; the empty dline is
// represented as a nil slice, never an allocated zero-length one, matching
// the "empty dline is a null pointer" invariant of §3.
package dline

import (
	"bytes"

	"github.com/jcdavis/cobb2/internal/record"
	"github.com/jcdavis/cobb2/pkg/errors"
)

// Entry is one (global-ref, score, suffix-bytes) tuple. Suffix is always a
// subslice of Ref.Normalized, never a private copy, so identical bytes
// never exist twice in memory for the same record.
type Entry struct {
	Ref    *record.Record
	Score  uint32
	Suffix []byte
}

// Dline is a sequence of entries sorted by the composite key
// (score DESC, global-ref DESC, suffix-length DESC). A nil Dline is the
// empty dline.
type Dline []Entry

// Mode selects which branch of Upsert runs; see Mode constants.
type Mode int

const (
	// ModeInitial means the caller does not yet know whether this suffix
	// belongs to a brand-new record or re-scores an existing one.
	ModeInitial Mode = iota
	// ModeInsert means a prior call (or ResolveMode) already determined
	// this is a new record.
	ModeInsert
	// ModeUpdate means a prior call (or ResolveMode) already found a
	// matching existing record to re-score.
	ModeUpdate
)

// State is threaded across the N calls that upsert or remove the N
// suffixes of one logical record, so that insert-vs-update is resolved at
// most once and every suffix after the first can use pointer identity
// instead of a content scan.
type State struct {
	Mode     Mode
	Ref      *record.Record
	OldScore uint32
}

// ResolveMode performs the INITIAL-phase scan (§4.2) that decides whether
// this logical upsert is a fresh insert or a re-score, and captures the
// matched record and its previous score into state. It is a no-op once
// state.Mode has already been resolved by an earlier suffix of the same
// logical upsert, so hash-node split decisions (internal/trie) can call it
// unconditionally before deciding whether an insert would overflow a
// bucket.
func ResolveMode(existing Dline, normalized []byte, start int, state *State) {
	if state.Mode != ModeInitial {
		return
	}

	suffix := normalized[start:]
	for _, e := range existing {
		if len(e.Suffix) == len(suffix) &&
			bytes.Equal(e.Suffix, suffix) &&
			e.Ref.SameContent(normalized) {
			state.Mode = ModeUpdate
			state.Ref = e.Ref
			state.OldScore = e.Score
			return
		}
	}

	state.Mode = ModeInsert
}

// Upsert builds a copy of existing with the suffix starting at start
// within normalized inserted (or re-scored) at score. full and normalized
// describe the entire record being upserted; start selects which suffix of
// it this call indexes. state persists across the calls for successive
// suffixes of one record.
func Upsert(existing Dline, full, normalized []byte, start int, score uint32, state *State) (Dline, error) {
	if normalized == nil || state == nil {
		return existing, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "dline upsert requires normalized bytes and state",
		).WithField("normalized/state").WithRule("required")
	}
	if start < 0 || start > len(normalized) {
		return existing, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "suffix start out of range",
		).WithField("start").WithRule("range").WithProvided(start).WithExpected([2]int{0, len(normalized)})
	}

	ResolveMode(existing, normalized, start, state)

	switch state.Mode {
	case ModeInsert:
		return insert(existing, full, normalized, start, score, state)
	case ModeUpdate:
		removed, err := Remove(existing, normalized, start, state)
		if err != nil {
			return existing, err
		}
		return insert(removed, full, normalized, start, score, state)
	default:
		return existing, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "invalid upsert mode",
		).WithField("mode").WithRule("enum").WithProvided(state.Mode)
	}
}

// insert creates the global record on first use (when no suffix of this
// logical upsert has created one yet) and splices a new entry into
// existing at the position that preserves the composite sort order.
func insert(existing Dline, full, normalized []byte, start int, score uint32, state *State) (Dline, error) {
	if state.Ref == nil {
		state.Ref = record.New(full, normalized)
	}

	entry := Entry{Ref: state.Ref, Score: score, Suffix: state.Ref.Normalized[start:]}

	pos := 0
	for pos < len(existing) && higherPriority(existing[pos], entry) {
		pos++
	}

	out := make(Dline, 0, len(existing)+1)
	out = append(out, existing[:pos]...)
	out = append(out, entry)
	out = append(out, existing[pos:]...)
	return out, nil
}

// Remove builds a copy of existing without the entry matching normalized's
// suffix at start. Once state.Ref is known (from a prior suffix of the
// same logical remove), matching is by pointer identity; otherwise it
// falls back to a content scan, writing the matched record into state.Ref
// so later suffixes can use the fast path.
func Remove(existing Dline, normalized []byte, start int, state *State) (Dline, error) {
	if normalized == nil || state == nil {
		return existing, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "dline remove requires normalized bytes and state",
		).WithField("normalized/state").WithRule("required")
	}

	suffix := normalized[start:]
	idx := -1
	for i, e := range existing {
		var match bool
		if state.Ref != nil {
			match = e.Ref == state.Ref && len(e.Suffix) == len(suffix) && bytes.Equal(e.Suffix, suffix)
		} else {
			match = len(e.Suffix) == len(suffix) && bytes.Equal(e.Suffix, suffix) && e.Ref.SameContent(normalized)
		}
		if match {
			idx = i
			break
		}
	}

	if idx == -1 {
		return existing, errors.NewIndexError(
			nil, errors.ErrorCodeIndexKeyNotFound, "suffix not present in dline",
		).WithOperation("Remove")
	}

	if state.Ref == nil {
		state.Ref = existing[idx].Ref
	}

	if len(existing) == 1 {
		return nil, nil
	}

	out := make(Dline, 0, len(existing)-1)
	out = append(out, existing[:idx]...)
	out = append(out, existing[idx+1:]...)
	return out, nil
}

// Result is one match surfaced by Search: the matched record, its score,
// how much of its normalized suffix matched, and where within the record
// that match begins.
type Result struct {
	Ref       *record.Record
	Score     uint32
	SuffixLen int
	Offset    int
}

// Search scans dline for entries whose suffix bytes begin with query,
// stopping at the first entry scoring below minScore, once maxResults
// entries have been produced, or at the end of the dline. Consecutive
// matches sharing a global-ref are deduplicated, keeping the first (and so
// the longest, by sort order) occurrence.
func Search(d Dline, query []byte, minScore uint32, maxResults int) []Result {
	if maxResults <= 0 {
		return nil
	}

	out := make([]Result, 0, maxResults)
	var prevRef *record.Record

	for _, e := range d {
		if e.Score < minScore {
			break
		}
		if len(query) > len(e.Suffix) || !bytes.Equal(query, e.Suffix[:len(query)]) {
			continue
		}
		if prevRef != nil && e.Ref == prevRef {
			continue
		}

		out = append(out, Result{
			Ref:       e.Ref,
			Score:     e.Score,
			SuffixLen: len(e.Suffix),
			Offset:    e.Ref.Len() - len(e.Suffix),
		})
		prevRef = e.Ref

		if len(out) == maxResults {
			break
		}
	}

	return out
}

// Iterate walks every entry in stored order. It is used by hash-node
// splitting (internal/trie) to re-insert every entry of an overflowing
// hash node into a fresh trie node.
func Iterate(d Dline, fn func(Entry)) {
	for _, e := range d {
		fn(e)
	}
}

// higherPriority reports whether a sorts strictly before b under the
// composite key (score DESC, global-ref DESC, suffix-length DESC).
func higherPriority(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Ref.ID() != b.Ref.ID() {
		return a.Ref.ID() > b.Ref.ID()
	}
	return len(a.Suffix) > len(b.Suffix)
}
