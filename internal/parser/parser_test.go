package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePreservesLengthAndCaseFolds(t *testing.T) {
	in := []byte("Hello World-42")
	out := Normalize(in)

	require.Equal(t, len(in), len(out))
	require.Equal(t, "hello world-42", string(out))
}

// Invariant 10: for non-empty strings whose first byte is not in
// middle-set, NextStart starts by returning 0.
func TestFirstStartIsZeroWhenFirstByteIsNotMiddle(t *testing.T) {
	c := NewClasses(nil, []byte{' '})
	require.Equal(t, 0, c.NextStart([]byte("hello world"), -1))
}

func TestFirstStartSkipsLeadingMiddleBytes(t *testing.T) {
	c := NewClasses(nil, []byte{' '})
	require.Equal(t, 2, c.NextStart([]byte("  hello"), -1))
}

func TestWordBoundarySuffixing(t *testing.T) {
	c := NewClasses(nil, []byte{' '})
	require.Equal(t, []int{0, 4}, c.Suffixes([]byte("new york")))
}

func TestStartClassForcesBoundaryAtEveryOccurrence(t *testing.T) {
	c := NewClasses([]byte{'-'}, nil)
	require.Equal(t, []int{0, 3, 7}, c.Suffixes([]byte("foo-bar-baz")))
}

func TestNoMiddleClassIndexesOnlyLeadingSuffix(t *testing.T) {
	c := NewClasses(nil, nil)
	require.Equal(t, []int{0}, c.Suffixes([]byte("foo-bar")))
}

func TestNextStartReturnsMinusOneAtEnd(t *testing.T) {
	c := NewClasses(nil, []byte{' '})
	require.Equal(t, -1, c.NextStart([]byte("hello"), 0))
}

func TestEmptyInputYieldsNoSuffixes(t *testing.T) {
	c := NewClasses(nil, []byte{' '})
	require.Empty(t, c.Suffixes(nil))
}

func TestNewEmptyInputError(t *testing.T) {
	err := NewEmptyInputError()
	require.Error(t, err)
	require.Equal(t, "value", err.Field())
}
