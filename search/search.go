package search

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/decider"
	"github.com/beaverkit/beaver/enumerate"
	"github.com/beaverkit/beaver/machine"
)

// Sentinel errors for sweep configuration.
var (
	// ErrInvalidBatchSize indicates a zero batch size.
	ErrInvalidBatchSize = errors.New("search: batch size must be positive")
	// ErrInvalidWorkerCount indicates a non-positive worker count.
	ErrInvalidWorkerCount = errors.New("search: worker count must be positive")
)

// Options configures a sweep.
type Options struct {
	// BatchSize is the id width of one batch. Batch k covers
	// [k*BatchSize, (k+1)*BatchSize).
	BatchSize uint64
	// Workers is the number of concurrent batch processors.
	Workers int
	// Deciders sets the step ceilings of the per-worker decider chain.
	Deciders decider.Options
	// Metrics receives per-batch progress when non-nil.
	Metrics *Metrics
}

// DefaultOptions returns a batch size that keeps batches in the
// sub-second range and one worker per CPU.
func DefaultOptions() Options {
	return Options{
		BatchSize: 50_000,
		Workers:   runtime.NumCPU(),
		Deciders:  decider.DefaultOptions(),
	}
}

// Validate rejects unusable option values.
func (o Options) Validate() error {
	if o.BatchSize == 0 {
		return ErrInvalidBatchSize
	}
	if o.Workers < 1 {
		return ErrInvalidWorkerCount
	}
	return o.Deciders.Validate()
}

// Searcher sweeps the id space of one state count.
type Searcher struct {
	nStates int
	total   uint64
	opts    Options
}

// New validates the configuration and sizes the sweep. State counts whose
// id space does not fit the id type are rejected here, before any work
// starts.
func New(nStates int, opts Options) (*Searcher, error) {
	total, err := codec.TotalMachineCount(nStates)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{nStates: nStates, total: total, opts: opts}, nil
}

// Total returns the size of the id space.
func (s *Searcher) Total() uint64 { return s.total }

// NumBatches returns how many batches cover the space.
func (s *Searcher) NumBatches() uint64 {
	return (s.total + s.opts.BatchSize - 1) / s.opts.BatchSize
}

// RunBatch processes batch k from scratch and returns its summary. The
// result depends only on k and the options, so re-running a batch — on
// this Searcher or another with the same configuration — reproduces it
// exactly.
func (s *Searcher) RunBatch(k uint64) (BatchSummary, error) {
	start := k * s.opts.BatchSize
	if start >= s.total {
		return BatchSummary{}, codec.ErrIDOutOfRange
	}
	end := start + s.opts.BatchSize
	if end > s.total {
		end = s.total
	}

	enum, err := enumerate.New(s.nStates)
	if err != nil {
		return BatchSummary{}, err
	}
	if err := enum.Seek(codec.MachineID(start)); err != nil {
		return BatchSummary{}, err
	}
	chain, err := decider.NewChain(s.opts.Deciders)
	if err != nil {
		return BatchSummary{}, err
	}

	sum := BatchSummary{
		Batch:   k,
		StartID: codec.MachineID(start),
		EndID:   codec.MachineID(end),
	}
	for {
		id, tb, ok := enum.Next()
		if !ok || uint64(id) >= end {
			break
		}
		sum.Scanned++
		verdict, reason := enumerate.Prescreen(tb)
		switch verdict {
		case enumerate.VerdictReject:
			sum.Pruned.Add(reason)
		case enumerate.VerdictHalt:
			sum.record(id, firstStepHalt(tb))
		default:
			sum.record(id, chain.Decide(*tb))
		}
	}
	return sum, nil
}

// firstStepHalt builds the result for a machine whose first field halts:
// one step, one visited cell, and a single 1 when the field writes one.
func firstStepHalt(tb *machine.TransitionTable) decider.Result {
	var ones uint64
	if f := tb.Field(0); !f.IsUndefined() && f.WritesOne() {
		ones = 1
	}
	return decider.NewHalted(1, ones, 1)
}

// BatchFunc observes each finished batch on the collector goroutine,
// before it is folded in. A non-nil error aborts the sweep.
type BatchFunc func(BatchSummary) error

// Run sweeps the whole space, fanning batches out to Workers goroutines
// and folding their summaries as they complete. On cancellation the
// partial fold is returned together with the context error.
func (s *Searcher) Run(ctx context.Context) (Summary, error) {
	return s.Resume(ctx, nil, nil)
}

// Resume continues a sweep: batches in prior are folded in as-is and not
// re-run, every other batch is processed as in Run. fn, when non-nil, sees
// each freshly finished batch and can persist it before the sweep moves on.
func (s *Searcher) Resume(ctx context.Context, prior []BatchSummary, fn BatchFunc) (Summary, error) {
	sum := Summary{NStates: s.nStates, Total: s.total}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	done := make(map[uint64]bool, len(prior))
	for _, b := range prior {
		sum.Merge(b)
		done[b.Batch] = true
	}

	batches := make(chan uint64)
	results := make(chan BatchSummary, s.opts.Workers)
	errc := make(chan error, s.opts.Workers+1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer close(batches)
		for k := uint64(0); k < s.NumBatches(); k++ {
			if done[k] {
				continue
			}
			select {
			case batches <- k:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range batches {
				bs, err := s.RunBatch(k)
				if err != nil {
					errc <- err
					cancel()
					return
				}
				select {
				case results <- bs:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var fnErr error
	for bs := range results {
		if fnErr != nil {
			continue
		}
		if fn != nil {
			if err := fn(bs); err != nil {
				fnErr = err
				cancel()
				continue
			}
		}
		sum.Merge(bs)
		s.opts.Metrics.observe(bs, sum.Champion)
	}
	sum.Finish()

	if fnErr != nil {
		return sum, fnErr
	}
	select {
	case err := <-errc:
		return sum, err
	default:
	}
	if err := ctx.Err(); err != nil && sum.Batches != s.NumBatches() {
		return sum, err
	}
	return sum, nil
}
