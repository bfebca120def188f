package search

import (
	"fmt"
	"sort"

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/decider"
	"github.com/beaverkit/beaver/enumerate"
)

// Champion records the best halting machine seen under some ranking.
// A zero Champion (Steps 0) means no halting machine has been seen:
// every halting run takes at least one step.
type Champion struct {
	ID    codec.MachineID
	Steps uint64
	Ones  uint64
	Tape  uint64
}

// beats reports whether c outranks o on steps, with the lower id winning
// ties so that merges are order-independent.
func (c Champion) beats(o Champion) bool {
	if c.Steps != o.Steps {
		return c.Steps > o.Steps
	}
	return c.Steps > 0 && c.ID < o.ID
}

// beatsOnes is the same ranking keyed on ones written (the sigma record).
func (c Champion) beatsOnes(o Champion) bool {
	if c.Ones != o.Ones {
		return c.Ones > o.Ones
	}
	return c.Steps > 0 && c.ID < o.ID
}

// BatchSummary is the immutable outcome of one batch. Two runs of the same
// batch with the same options produce identical summaries.
type BatchSummary struct {
	Batch   uint64
	StartID codec.MachineID
	// EndID is exclusive.
	EndID codec.MachineID

	Scanned   uint64
	Halted    uint64
	Cyclers   uint64
	Bouncers  uint64
	Undecided uint64
	Pruned    enumerate.PruneCount

	Champion     Champion
	OnesChampion Champion

	// UndecidedIDs lists every machine neither screened out nor decided,
	// in ascending order. These are the sweep's open leads.
	UndecidedIDs []codec.MachineID
}

// NonHalting returns the number of machines proved to never halt,
// including the statically pruned ones.
func (b *BatchSummary) NonHalting() uint64 {
	return b.Cyclers + b.Bouncers + b.Pruned.Total()
}

// record tallies one decided machine into the summary.
func (b *BatchSummary) record(id codec.MachineID, res decider.Result) {
	switch res.Kind {
	case decider.Halted:
		b.Halted++
		c := Champion{ID: id, Steps: res.Steps, Ones: res.OnesWritten, Tape: res.TapeLength}
		if c.beats(b.Champion) {
			b.Champion = c
		}
		if c.beatsOnes(b.OnesChampion) {
			b.OnesChampion = c
		}
	case decider.NonHalting:
		switch res.Reason {
		case decider.ReasonCycler:
			b.Cyclers++
		case decider.ReasonBouncer:
			b.Bouncers++
		}
	case decider.Undecided:
		b.Undecided++
		b.UndecidedIDs = append(b.UndecidedIDs, id)
	}
}

// Summary is the fold of batch summaries over a whole id space.
type Summary struct {
	NStates int
	Total   uint64
	Batches uint64

	Scanned   uint64
	Halted    uint64
	Cyclers   uint64
	Bouncers  uint64
	Undecided uint64
	Pruned    enumerate.PruneCount

	Champion     Champion
	OnesChampion Champion

	UndecidedIDs []codec.MachineID
}

// Merge folds one batch in. Merging is commutative and associative up to
// the order of UndecidedIDs; call Finish once all batches are in.
func (s *Summary) Merge(b BatchSummary) {
	s.Batches++
	s.Scanned += b.Scanned
	s.Halted += b.Halted
	s.Cyclers += b.Cyclers
	s.Bouncers += b.Bouncers
	s.Undecided += b.Undecided
	s.Pruned.Merge(b.Pruned)
	if b.Champion.beats(s.Champion) {
		s.Champion = b.Champion
	}
	if b.OnesChampion.beatsOnes(s.OnesChampion) {
		s.OnesChampion = b.OnesChampion
	}
	s.UndecidedIDs = append(s.UndecidedIDs, b.UndecidedIDs...)
}

// NonHalting returns the number of machines proved to never halt.
func (s *Summary) NonHalting() uint64 {
	return s.Cyclers + s.Bouncers + s.Pruned.Total()
}

// Finish sorts the undecided ids, making the summary independent of the
// order batches completed in.
func (s *Summary) Finish() {
	sort.Slice(s.UndecidedIDs, func(i, j int) bool {
		return s.UndecidedIDs[i] < s.UndecidedIDs[j]
	})
}

func (s *Summary) String() string {
	return fmt.Sprintf(
		"%d states: %d scanned, %d halted, %d non-halting (%d pruned), %d undecided; champion id %d with %d steps",
		s.NStates, s.Scanned, s.Halted, s.NonHalting(), s.Pruned.Total(),
		s.Undecided, s.Champion.ID, s.Champion.Steps)
}
