package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beaverkit/beaver/search"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sweep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestStore_SaveAndReload(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	opts := search.DefaultOptions()
	opts.BatchSize = 1000
	searcher, err := search.New(2, opts)
	require.NoError(t, err)

	var saved []search.BatchSummary
	for k := uint64(0); k < searcher.NumBatches(); k++ {
		bs, err := searcher.RunBatch(k)
		require.NoError(t, err)
		require.NoError(t, st.SaveBatch(ctx, 2, bs))
		saved = append(saved, bs)
	}

	loaded, err := st.Batches(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)

	sum, err := st.Summary(ctx, 2)
	require.NoError(t, err)
	live, err := searcher.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, live.Scanned, sum.Scanned)
	require.Equal(t, live.Halted, sum.Halted)
	require.Equal(t, live.Pruned, sum.Pruned)
	require.Equal(t, live.Champion, sum.Champion)
	require.Equal(t, live.UndecidedIDs, sum.UndecidedIDs)
}

func TestStore_ReplaceBatch(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	opts := search.DefaultOptions()
	opts.BatchSize = 1000
	searcher, err := search.New(2, opts)
	require.NoError(t, err)
	bs, err := searcher.RunBatch(1)
	require.NoError(t, err)

	require.NoError(t, st.SaveBatch(ctx, 2, bs))
	require.NoError(t, st.SaveBatch(ctx, 2, bs))

	loaded, err := st.Batches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, bs, loaded[0])
}

func TestStore_SeedsResume(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	opts := search.DefaultOptions()
	opts.BatchSize = 1000
	opts.Workers = 2
	searcher, err := search.New(2, opts)
	require.NoError(t, err)

	// First run: persist only the first two batches, as if interrupted.
	for k := uint64(0); k < 2; k++ {
		bs, err := searcher.RunBatch(k)
		require.NoError(t, err)
		require.NoError(t, st.SaveBatch(ctx, 2, bs))
	}

	prior, err := st.Batches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, prior, 2)
	resumed, err := searcher.Resume(ctx, prior, func(b search.BatchSummary) error {
		return st.SaveBatch(ctx, 2, b)
	})
	require.NoError(t, err)

	full, err := searcher.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, full.Scanned, resumed.Scanned)
	require.Equal(t, full.Champion, resumed.Champion)

	// Everything is now on disk; the stored fold matches too.
	stored, err := st.Summary(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, full.Scanned, stored.Scanned)
	require.Equal(t, full.Champion, stored.Champion)

	ids, err := st.UndecidedIDs(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, full.UndecidedIDs, ids)
}

func TestStore_EmptyStates(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	loaded, err := st.Batches(ctx, 4)
	require.NoError(t, err)
	require.Empty(t, loaded)

	sum, err := st.Summary(ctx, 4)
	require.NoError(t, err)
	require.Zero(t, sum.Scanned)
	require.Zero(t, sum.Batches)
}
