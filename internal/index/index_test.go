package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jcdavis/cobb2/pkg/options"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	opts := options.NewDefaultOptions()
	idx, err := New(context.Background(), &Config{Options: opts, Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	return idx
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)
}

func TestNewRejectsEmptyByteClasses(t *testing.T) {
	opts := options.NewDefaultOptions()
	empty := options.WithMiddleChars("")
	empty(&opts)
	_, err := New(context.Background(), &Config{Options: opts, Logger: zaptest.NewLogger(t).Sugar()})
	require.Error(t, err)
}

func TestUpsertSearchRemoveRoundTrip(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Upsert([]byte("Hello World"), 100))
	require.NoError(t, idx.Upsert([]byte("Help Desk"), 90))

	results, err := idx.Search([]byte("he"), 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, uint32(100), results[0].Score)
	require.Equal(t, uint32(90), results[1].Score)

	require.NoError(t, idx.Remove([]byte("Hello World")))

	results, err = idx.Search([]byte("he"), 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint32(90), results[0].Score)
}

func TestOperationsOnClosedIndexFail(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Close())

	_, err := idx.Search([]byte("he"), 0, 10)
	require.ErrorIs(t, err, ErrIndexClosed)

	require.ErrorIs(t, idx.Upsert([]byte("hello"), 1), ErrIndexClosed)
	require.ErrorIs(t, idx.Remove([]byte("hello")), ErrIndexClosed)

	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}

func TestEmptyUpsertAndRemoveRejected(t *testing.T) {
	idx := newTestIndex(t)

	require.Error(t, idx.Upsert(nil, 1))
	require.Error(t, idx.Remove(nil))
}

// An empty query is legal: it matches every indexed suffix, which Scenario
// 2 (re-scoring) relies on to list the whole index in priority order.
func TestEmptySearchQueryMatchesEverything(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Upsert([]byte("alpha"), 10))
	require.NoError(t, idx.Upsert([]byte("beta"), 20))

	results, err := idx.Search(nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, uint32(20), results[0].Score)
	require.Equal(t, uint32(10), results[1].Score)
}

func TestMultiSuffixUpsertIndexesEveryWordBoundary(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Upsert([]byte("new york"), 10))

	results, err := idx.Search([]byte("new"), 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = idx.Search([]byte("york"), 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NoError(t, idx.Remove([]byte("new york")))

	results, err = idx.Search([]byte("york"), 0, 10)
	require.NoError(t, err)
	require.Empty(t, results)
}
