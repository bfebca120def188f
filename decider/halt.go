package decider

import (
	"github.com/beaverkit/beaver/engine"
	"github.com/beaverkit/beaver/machine"
)

// Halt is the plain bounded runner: it simulates until the machine halts
// or the step ceiling is reached and proves nothing about non-halting.
type Halt struct {
	eng   *engine.Engine
	limit uint64
}

// NewHalt returns a reusable halt runner with the given step ceiling.
func NewHalt(stepLimit uint64) *Halt {
	return &Halt{eng: engine.New(), limit: stepLimit}
}

// Decide runs tb to halt or the ceiling.
func (h *Halt) Decide(tb machine.TransitionTable) Result {
	e := h.eng
	e.Load(tb)
	for {
		tr, _ := e.Fetch()
		if tr.IsHalt() {
			e.Finish(tr)
			return NewHalted(e.Steps(), e.Tape.CountOnes(), e.Tape.CellsVisited())
		}
		if e.Steps() >= h.limit {
			return NewUndecided(e.Steps())
		}
		e.Apply(tr)
	}
}

// RunTable is a convenience for deciding a single machine without keeping
// a runner around, e.g. for machines loaded from files.
func RunTable(tb machine.TransitionTable, stepLimit uint64) Result {
	return NewHalt(stepLimit).Decide(tb)
}
