// Package parser normalizes input strings and selects which of their
// suffixes get indexed, so that a substring query can be answered by a
// prefix search of the index instead of a full scan.
//
// A suffix boundary is any byte classified as a start byte, plus the first
// byte after a run of middle bytes (so "new york" with an empty start class
// and a middle class of {space} indexes both "new york" and "york", but
// "foo-bar" with neither class only indexes "foo-bar").
package parser

import "github.com/jcdavis/cobb2/pkg/errors"

// Classes holds the two byte classifications next-suffix-start scanning
// needs: which bytes always start a new suffix, and which bytes are
// "middle" bytes whose end (the first following non-middle byte) also
// starts a new suffix.
type Classes struct {
	start  [256]bool
	middle [256]bool
}

// NewClasses builds a Classes from the given start and middle byte sets.
// A byte may appear in both sets; start takes precedence during scanning.
func NewClasses(start, middle []byte) *Classes {
	c := &Classes{}
	for _, b := range start {
		c.start[b] = true
	}
	for _, b := range middle {
		c.middle[b] = true
	}
	return c
}

// Normalize returns a case-folded copy of in. Folding is byte-for-byte
// ASCII only, so the result is always the same length as the input: every
// offset computed against the normalized form is valid against the
// original full bytes too.
func Normalize(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		out[i] = b
	}
	return out
}

// NextStart scans normalized for the next suffix boundary strictly after
// lastStart. Pass lastStart < 0 for the first call, which starts in
// "middle mode": position 0 is itself a suffix boundary unless it is a
// middle byte, in which case the first suffix begins at the first
// following non-middle byte. NextStart returns -1 once no further suffix
// boundary exists.
func (c *Classes) NextStart(normalized []byte, lastStart int) int {
	tokenStart := 0
	if lastStart >= 0 {
		tokenStart = lastStart + 1
	}

	prevMiddle := tokenStart == 0

	for i := tokenStart; i < len(normalized); i++ {
		b := normalized[i]
		isMiddle := c.middle[b]
		if (prevMiddle && !isMiddle) || c.start[b] {
			return i
		}
		prevMiddle = isMiddle
	}

	return -1
}

// Suffixes returns every suffix start offset NextStart yields for
// normalized, in ascending order. It is a convenience wrapper around
// repeated NextStart calls for callers that want every offset at once
// rather than driving the scan themselves.
func (c *Classes) Suffixes(normalized []byte) []int {
	var starts []int
	last := -1
	for {
		next := c.NextStart(normalized, last)
		if next < 0 {
			return starts
		}
		starts = append(starts, next)
		last = next
	}
}

// NewEmptyInputError builds the validation error callers return when they
// reject a zero-length string before it reaches the index; parser itself
// has no length floor.
func NewEmptyInputError() *errors.ValidationError {
	return errors.NewValidationError(
		nil, errors.ErrorCodeInvalidInput, "input string must not be empty",
	).WithField("value").WithRule("required")
}
