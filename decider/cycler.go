package decider

import (
	"github.com/beaverkit/beaver/engine"
	"github.com/beaverkit/beaver/machine"
)

// searchZeroSideFrom bounds the cycle search on long runs: past this step
// candidates are only examined while one window half is blank, which holds
// for the tape-anchored cycles this procedure targets.
const searchZeroSideFrom = 50

// stepRecCap caps the initial step recorder allocation.
const stepRecCap = 10_000

// cyclerStep is one recorded step: the table field consulted, the window
// before the step ran, and the head shift the step performs.
type cyclerStep struct {
	field  int
	before engine.Window
	shift  int8
}

// Cycler detects exact recurrences: if the same table field is consulted
// twice with an identical step sequence in between and the tape agrees on
// every cell that sequence touches, the machine repeats forever.
//
// Every step is recorded together with the window snapshot. A per-field
// index maps each table field to the steps that consulted it; when a field
// recurs, the candidate distances are checked most-recent first.
type Cycler struct {
	eng   *engine.Engine
	limit uint64

	steps      []cyclerStep
	fieldSteps [machine.TableSize][]int
}

// NewCycler returns a reusable cycler with the given step ceiling.
func NewCycler(stepLimit uint64) *Cycler {
	n := int(stepLimit)
	if n > stepRecCap {
		n = stepRecCap
	}
	c := &Cycler{
		eng:   engine.New(),
		limit: stepLimit,
		steps: make([]cyclerStep, 0, n),
	}
	for i := range c.fieldSteps {
		c.fieldSteps[i] = make([]int, 0, n/4)
	}
	return c
}

// Decide runs tb until a cycle is proved, the machine halts, or the step
// ceiling is reached.
func (c *Cycler) Decide(tb machine.TransitionTable) Result {
	e := c.eng
	e.Load(tb)
	c.steps = c.steps[:0]
	for i := range c.fieldSteps {
		c.fieldSteps[i] = c.fieldSteps[i][:0]
	}

	for {
		tr, field := e.Fetch()
		c.fieldSteps[field] = append(c.fieldSteps[field], len(c.steps))
		c.steps = append(c.steps, cyclerStep{
			field:  field,
			before: e.Tape.Window(),
			shift:  int8(tr.Shift()),
		})

		if tr.IsHalt() {
			e.Finish(tr)
			return NewHalted(e.Steps(), e.Tape.CountOnes(), e.Tape.CellsVisited())
		}
		if e.Steps() >= c.limit {
			return NewUndecided(e.Steps())
		}

		e.Apply(tr)

		next := e.FieldIndex()
		w := e.Tape.Window()
		if len(c.fieldSteps[next]) > 1 &&
			(len(c.steps) < searchZeroSideFrom || w.Right == 0 || w.Left == 0) {
			if res, ok := c.searchCycle(next, w); ok {
				return res
			}
		}
	}
}

// searchCycle checks every earlier visit of field next, most recent first,
// for a repeating cycle ending at the current step.
func (c *Cycler) searchCycle(next int, w engine.Window) (Result, bool) {
	visits := c.fieldSteps[next]
candidates:
	for i := len(visits) - 1; i >= 1; i-- {
		stepID := visits[i]
		distance := len(c.steps) - stepID
		// two full occurrences of the cycle must be on record
		if distance > stepID {
			break
		}

		for j := stepID; j < len(c.steps); j++ {
			if c.steps[j].field != c.steps[j-distance].field {
				continue candidates
			}
		}

		before := c.steps[stepID].before
		if before.Equal(w) {
			return NewCyclerResult(uint64(len(c.steps)), uint64(distance)), true
		}

		// the tapes differ somewhere; compare only the cells the cycle
		// can touch, tracked via the cumulative head shift
		var totalShift, minL, maxR int
		for j := stepID; j < len(c.steps); j++ {
			totalShift += int(c.steps[j].shift)
			if totalShift < minL {
				minL = totalShift
			}
			if totalShift > maxR {
				maxR = totalShift
			}
		}
		if minL < -64 || maxR > 63 {
			// cycle span exceeds the window, cannot verify
			continue
		}
		// a drifting cycle eventually consumes everything on that side;
		// the side must be blank and is compared in full
		if totalShift > 0 {
			if !c.eng.Tape.RightBlank() {
				continue
			}
			maxR = 63
		} else if totalShift < 0 {
			if !c.eng.Tape.LeftBlank() {
				continue
			}
			minL = -64
		}

		mask := windowMask(63-maxR, 63-minL)
		if before.Masked(mask).Equal(w.Masked(mask)) {
			return NewCyclerResult(uint64(len(c.steps)), uint64(distance)), true
		}
	}
	return Result{}, false
}

// windowMask builds the 128-bit window mask covering bits lo..hi inclusive,
// bit 0 being the window's far right.
func windowMask(lo, hi int) engine.Window {
	var m engine.Window
	if lo <= 63 {
		h := hi
		if h > 63 {
			h = 63
		}
		if n := h - lo + 1; n >= 64 {
			m.Right = ^uint64(0)
		} else {
			m.Right = (1<<uint(n) - 1) << uint(lo)
		}
	}
	if hi >= 64 {
		l := lo
		if l < 64 {
			l = 64
		}
		if n := hi - l + 1; n >= 64 {
			m.Left = ^uint64(0)
		} else {
			m.Left = (1<<uint(n) - 1) << uint(l-64)
		}
	}
	return m
}
