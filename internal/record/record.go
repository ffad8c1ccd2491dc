// Package record owns the canonical bytes of one indexed string. A Record
// is created once per indexed string and referenced by pointer identity
// from every dline entry across every suffix of that string; its contents
// never change after creation.
package record

import "sync/atomic"

var nextID uint64

// Record is the global record of §3/§4.1: a heap-allocated, immutable copy
// of an indexed string's original bytes and its normalized form. Two
// distinct Records may hold equal bytes; they are never deduplicated by
// value, only by identity (Go pointer equality, or ID for ordering).
type Record struct {
	id         uint64
	Full       []byte
	Normalized []byte
}

// New copies full and normalized and assigns a fresh identity. normalized
// must be the same length as full (case-folding preserves length; see
// internal/parser.Normalize).
func New(full, normalized []byte) *Record {
	fullCopy := make([]byte, len(full))
	copy(fullCopy, full)

	normCopy := make([]byte, len(normalized))
	copy(normCopy, normalized)

	return &Record{
		id:         atomic.AddUint64(&nextID, 1),
		Full:       fullCopy,
		Normalized: normCopy,
	}
}

// ID returns a monotonically increasing identity assigned at creation. The
// dline sort order (§3, "global-ref DESC") and the merge-dedup contract
// (§4.5) need a total order over record identity; a creation-order counter
// gives that order without resorting to comparing raw pointer addresses,
// which Go does not allow.
func (r *Record) ID() uint64 {
	return r.id
}

// Len returns the shared length of Full and Normalized.
func (r *Record) Len() int {
	return len(r.Normalized)
}

// SameContent reports whether r's normalized form equals normalized,
// used during the INITIAL phase of upsert to decide insert-vs-update when
// comparing against a candidate record before any suffix mismatch has been
// ruled out by identity.
func (r *Record) SameContent(normalized []byte) bool {
	if len(r.Normalized) != len(normalized) {
		return false
	}
	for i := range normalized {
		if r.Normalized[i] != normalized[i] {
			return false
		}
	}
	return true
}
