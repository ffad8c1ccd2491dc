package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jcdavis/cobb2/pkg/options"
)

func newTestEngine(t *testing.T, opts ...options.OptionFunc) *Engine {
	t.Helper()
	o := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e, err := New(context.Background(), &Config{Options: &o, Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, err)
	return e
}

func texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = string(r.Full)
	}
	return out
}

// Scenario 1 — prefix of leading word.
func TestScenario1PrefixOfLeadingWord(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.Upsert(ctx, []byte("Hello World"), 100))
	require.NoError(t, e.Upsert(ctx, []byte("Help Desk"), 90))

	results, err := e.Search(ctx, []byte("he"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"Hello World", "Help Desk"}, texts(results))
	require.Equal(t, uint32(100), results[0].Score)
	require.Equal(t, uint32(90), results[1].Score)

	results, err = e.Search(ctx, []byte("wo"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"Hello World"}, texts(results))
	require.Equal(t, 6, results[0].Offset)
}

// Scenario 2 — re-scoring.
func TestScenario2Rescoring(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.Upsert(ctx, []byte("alpha"), 10))
	require.NoError(t, e.Upsert(ctx, []byte("beta"), 20))

	results, err := e.Search(ctx, []byte(""), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"beta", "alpha"}, texts(results))

	require.NoError(t, e.Upsert(ctx, []byte("alpha"), 30))

	results, err = e.Search(ctx, []byte(""), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, texts(results))
	require.Equal(t, uint32(30), results[0].Score)
	require.Equal(t, uint32(20), results[1].Score)
}

// Scenario 3 — dedup across suffixes.
func TestScenario3DedupAcrossSuffixes(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.Upsert(ctx, []byte("foo foo"), 50))

	results, err := e.Search(ctx, []byte("foo"), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 0, results[0].Offset)
	require.Equal(t, 7, results[0].SuffixLen)
}

// Scenario 4 — remove.
func TestScenario4Remove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	require.NoError(t, e.Upsert(ctx, []byte("Hello World"), 100))
	require.NoError(t, e.Upsert(ctx, []byte("Help Desk"), 90))
	require.NoError(t, e.Remove(ctx, []byte("Hello World")))

	results, err := e.Search(ctx, []byte("he"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"Help Desk"}, texts(results))

	results, err = e.Search(ctx, []byte("wo"), 0)
	require.NoError(t, err)
	require.Empty(t, results)
}

// Scenario 5 — hash split.
func TestScenario5HashSplit(t *testing.T) {
	ctx := context.Background()
	const threshold = 10
	e := newTestEngine(t, options.WithSplitThreshold(threshold), options.WithBucketCount(4))

	total := threshold + 1
	for i := 0; i < total; i++ {
		text := fmt.Sprintf("zzz%c", byte('a'+i))
		require.NoError(t, e.Upsert(ctx, []byte(text), uint32(i)))
	}

	results, err := e.Search(ctx, []byte("zzz"), total)
	require.NoError(t, err)
	require.Len(t, results, total)
	for i := 0; i < total-1; i++ {
		require.GreaterOrEqual(t, results[i].Score, results[i+1].Score)
	}
}

// Scenario 5, positional case: entries share only a one-byte prefix and
// diverge immediately after it, so a query longer than that shared prefix
// must still resolve correctly once the overflowing hash node has split
// into a trie node.
func TestScenario5HashSplitPositionalLookup(t *testing.T) {
	ctx := context.Background()
	const threshold = 2
	e := newTestEngine(t, options.WithSplitThreshold(threshold), options.WithBucketCount(4))

	require.NoError(t, e.Upsert(ctx, []byte("za1"), 10))
	require.NoError(t, e.Upsert(ctx, []byte("zb1"), 20))
	require.NoError(t, e.Upsert(ctx, []byte("zc1"), 30))

	results, err := e.Search(ctx, []byte("za1"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"za1"}, texts(results))

	results, err = e.Search(ctx, []byte("zc1"), 0)
	require.NoError(t, err)
	require.Equal(t, []string{"zc1"}, texts(results))
}

// Scenario 6 — top-K cap.
func TestScenario6TopKCap(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, options.WithMaxResults(3))

	for i := 1; i <= 10; i++ {
		text := fmt.Sprintf("a%d", i)
		require.NoError(t, e.Upsert(ctx, []byte(text), uint32(i)))
	}

	results, err := e.Search(ctx, []byte("a"), 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, uint32(10), results[0].Score)
	require.Equal(t, uint32(9), results[1].Score)
	require.Equal(t, uint32(8), results[2].Score)
}

func TestOperationsOnClosedEngineFail(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, e.Close())

	require.ErrorIs(t, e.Upsert(ctx, []byte("hello"), 1), ErrEngineClosed)
	require.ErrorIs(t, e.Remove(ctx, []byte("hello")), ErrEngineClosed)
	_, err := e.Search(ctx, []byte("he"), 0)
	require.ErrorIs(t, err, ErrEngineClosed)
	require.ErrorIs(t, e.Close(), ErrEngineClosed)
}
