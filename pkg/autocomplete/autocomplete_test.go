package autocomplete

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcdavis/cobb2/pkg/options"
)

func texts(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

func TestInstanceUpsertSearchRemove(t *testing.T) {
	ctx := context.Background()
	inst, err := NewInstance(ctx, "autocomplete-test")
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Upsert(ctx, "Hello World", 100))
	require.NoError(t, inst.Upsert(ctx, "Help Desk", 90))

	results, err := inst.Search(ctx, "he")
	require.NoError(t, err)
	require.Equal(t, []string{"Hello World", "Help Desk"}, texts(results))
	require.Equal(t, uint32(100), results[0].Score)
	require.Equal(t, 11, results[0].NormalizedLength)

	require.NoError(t, inst.Remove(ctx, "Hello World"))

	results, err = inst.Search(ctx, "he")
	require.NoError(t, err)
	require.Equal(t, []string{"Help Desk"}, texts(results))
}

func TestInstanceRescoring(t *testing.T) {
	ctx := context.Background()
	inst, err := NewInstance(ctx, "autocomplete-test")
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Upsert(ctx, "alpha", 10))
	require.NoError(t, inst.Upsert(ctx, "beta", 20))

	results, err := inst.Search(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"beta", "alpha"}, texts(results))

	require.NoError(t, inst.Upsert(ctx, "alpha", 30))

	results, err = inst.Search(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, texts(results))
}

func TestInstanceHonorsOptionOverrides(t *testing.T) {
	ctx := context.Background()
	inst, err := NewInstance(ctx, "autocomplete-test", options.WithMaxResults(1))
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Upsert(ctx, "cap-one", 1))
	require.NoError(t, inst.Upsert(ctx, "cap-two", 2))

	results, err := inst.Search(ctx, "cap")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "cap-two", results[0].Text)
}

func TestInstanceCloseIsIdempotentlyReportedOnSubsequentOps(t *testing.T) {
	ctx := context.Background()
	inst, err := NewInstance(ctx, "autocomplete-test")
	require.NoError(t, err)

	require.NoError(t, inst.Close(ctx))
	require.Error(t, inst.Upsert(ctx, "hello", 1))

	_, err = inst.Search(ctx, "he")
	require.Error(t, err)
}
