package search

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/decider"
	"github.com/beaverkit/beaver/enumerate"
)

func sweep(t *testing.T, nStates int, opts Options) Summary {
	t.Helper()
	s, err := New(nStates, opts)
	require.NoError(t, err)
	sum, err := s.Run(context.Background())
	require.NoError(t, err)
	return sum
}

// Every 1-state machine either halts on its first step or starts with a
// field no canonical table can have.
func TestSearcher_OneState(t *testing.T) {
	opts := DefaultOptions()
	opts.BatchSize = 10
	opts.Workers = 2
	sum := sweep(t, 1, opts)

	require.Equal(t, uint64(25), sum.Total)
	require.Equal(t, uint64(25), sum.Scanned)
	require.Equal(t, uint64(3), sum.Batches)
	require.Equal(t, uint64(5), sum.Halted)
	require.Equal(t, uint64(20), sum.Pruned.Get(enumerate.ReasonStartNotRightToB))
	require.Zero(t, sum.Undecided)
	require.Equal(t, uint64(1), sum.Champion.Steps)
}

func TestSearcher_TwoState(t *testing.T) {
	opts := DefaultOptions()
	opts.BatchSize = 1000
	opts.Workers = 4
	sum := sweep(t, 2, opts)

	require.Equal(t, uint64(6561), sum.Scanned)
	require.Equal(t, sum.Scanned, sum.Halted+sum.NonHalting()+sum.Undecided)
	require.NotZero(t, sum.Cyclers)

	// The 2-state step record is 6 steps; ties resolve to the lowest id,
	// which is 2666 ("0RB---_1LA1RB", 2 ones over 3 cells). The 4-ones
	// record holder is tracked separately.
	require.Equal(t, uint64(6), sum.Champion.Steps)
	require.Equal(t, codec.MachineID(2666), sum.Champion.ID)
	require.Equal(t, uint64(2), sum.Champion.Ones)
	require.Equal(t, uint64(3), sum.Champion.Tape)
	require.Equal(t, uint64(4), sum.OnesChampion.Ones)
	require.Equal(t, codec.MachineID(6303), sum.OnesChampion.ID)

	// The champion id decodes to a machine that indeed halts in 6 steps.
	tb, err := codec.Decode(sum.Champion.ID, 2)
	require.NoError(t, err)
	res := decider.RunTable(tb, 100)
	require.Equal(t, decider.Halted, res.Kind)
	require.Equal(t, uint64(6), res.Steps)
}

func TestSearcher_ThreeState(t *testing.T) {
	if testing.Short() {
		t.Skip("full 3-state sweep")
	}
	opts := DefaultOptions()
	sum := sweep(t, 3, opts)

	require.Equal(t, uint64(4_826_809), sum.Scanned)
	require.Equal(t, sum.Scanned, sum.Halted+sum.NonHalting()+sum.Undecided)
	require.Equal(t, uint64(21), sum.Champion.Steps)
}

// The fold must not depend on how the space is cut into batches.
func TestSearcher_BatchSizeEquivalence(t *testing.T) {
	small := DefaultOptions()
	small.BatchSize = 729
	small.Workers = 3
	big := DefaultOptions()
	big.BatchSize = 10_000
	big.Workers = 1

	a := sweep(t, 2, small)
	b := sweep(t, 2, big)

	require.Equal(t, b.Scanned, a.Scanned)
	require.Equal(t, b.Halted, a.Halted)
	require.Equal(t, b.Cyclers, a.Cyclers)
	require.Equal(t, b.Bouncers, a.Bouncers)
	require.Equal(t, b.Undecided, a.Undecided)
	require.Equal(t, b.Pruned, a.Pruned)
	require.Equal(t, b.Champion, a.Champion)
	require.Equal(t, b.OnesChampion, a.OnesChampion)
	require.Equal(t, b.UndecidedIDs, a.UndecidedIDs)
}

// Re-running a batch reproduces its summary bit for bit.
func TestSearcher_BatchIdempotence(t *testing.T) {
	opts := DefaultOptions()
	opts.BatchSize = 1000
	s, err := New(2, opts)
	require.NoError(t, err)

	first, err := s.RunBatch(3)
	require.NoError(t, err)
	second, err := s.RunBatch(3)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, codec.MachineID(3000), first.StartID)
	require.Equal(t, codec.MachineID(4000), first.EndID)
	require.Equal(t, uint64(1000), first.Scanned)

	_, err = s.RunBatch(s.NumBatches())
	require.ErrorIs(t, err, codec.ErrIDOutOfRange)
}

func TestSearcher_ConfigErrors(t *testing.T) {
	_, err := New(7, DefaultOptions())
	require.ErrorIs(t, err, codec.ErrStateCount)
	_, err = New(0, DefaultOptions())
	require.ErrorIs(t, err, codec.ErrStateCount)

	opts := DefaultOptions()
	opts.BatchSize = 0
	_, err = New(2, opts)
	require.ErrorIs(t, err, ErrInvalidBatchSize)

	opts = DefaultOptions()
	opts.Workers = 0
	_, err = New(2, opts)
	require.ErrorIs(t, err, ErrInvalidWorkerCount)

	opts = DefaultOptions()
	opts.Deciders.CyclerSteps = 0
	_, err = New(2, opts)
	require.ErrorIs(t, err, decider.ErrBadStepLimit)
}

// A resumed sweep folds stored batches without re-running them and ends
// at the same summary as a fresh one.
func TestSearcher_Resume(t *testing.T) {
	opts := DefaultOptions()
	opts.BatchSize = 1000
	opts.Workers = 2
	s, err := New(2, opts)
	require.NoError(t, err)

	var prior []BatchSummary
	for k := uint64(0); k < 3; k++ {
		bs, err := s.RunBatch(k)
		require.NoError(t, err)
		prior = append(prior, bs)
	}

	var fresh []uint64
	resumed, err := s.Resume(context.Background(), prior, func(b BatchSummary) error {
		fresh = append(fresh, b.Batch)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, fresh, int(s.NumBatches())-3)
	require.NotContains(t, fresh, uint64(0))
	require.NotContains(t, fresh, uint64(2))

	full, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, full.Scanned, resumed.Scanned)
	require.Equal(t, full.Halted, resumed.Halted)
	require.Equal(t, full.Pruned, resumed.Pruned)
	require.Equal(t, full.Champion, resumed.Champion)
	require.Equal(t, full.UndecidedIDs, resumed.UndecidedIDs)
}

func TestSearcher_Cancellation(t *testing.T) {
	s, err := New(2, DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearcher_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := DefaultOptions()
	opts.BatchSize = 10
	opts.Metrics = NewMetrics(reg)

	sweep(t, 1, opts)

	require.Equal(t, float64(25), testutil.ToFloat64(opts.Metrics.scanned))
	require.Equal(t, float64(3), testutil.ToFloat64(opts.Metrics.batches))
	require.Equal(t, float64(20), testutil.ToFloat64(
		opts.Metrics.pruned.WithLabelValues(enumerate.ReasonStartNotRightToB.String())))
	require.Equal(t, float64(5), testutil.ToFloat64(
		opts.Metrics.decided.WithLabelValues("halted")))
	require.Equal(t, float64(1), testutil.ToFloat64(opts.Metrics.championSteps))
}
