package decider

import (
	"math/bits"

	"github.com/beaverkit/beaver/engine"
	"github.com/beaverkit/beaver/machine"
)

// Bouncer detects machines that sweep back and forth over the written
// region, extending it by the same bit pattern on every pass.
//
// Whenever one side of the tape is completely blank the opposite window
// half is recorded; records therefore alternate left-blank / right-blank.
// Three consecutive same-side records whose pairwise XOR is the same bit
// pattern at a constantly growing offset prove the sweep repeats forever.
// The growth must show on both sides before the machine is classified.
type Bouncer struct {
	eng   *engine.Engine
	limit uint64

	// alternating snapshots: even entries hold the right window half at
	// left-blank steps, odd entries the left half at right-blank steps
	records []uint64
}

// NewBouncer returns a reusable bouncer with the given step ceiling.
func NewBouncer(stepLimit uint64) *Bouncer {
	n := int(stepLimit)
	if n > stepRecCap {
		n = stepRecCap
	}
	return &Bouncer{eng: engine.New(), limit: stepLimit, records: make([]uint64, 0, n)}
}

// Decide runs tb until the sweep pattern is proved, the machine halts, or
// the step ceiling is reached.
func (b *Bouncer) Decide(tb machine.TransitionTable) Result {
	e := b.eng
	e.Load(tb)
	b.records = b.records[:0]

	var lastLeftBlank, lastRightBlank uint64
	bouncingRight := false

	for {
		tr, _ := e.Fetch()
		if tr.IsHalt() {
			e.Finish(tr)
			return NewHalted(e.Steps(), e.Tape.CountOnes(), e.Tape.CellsVisited())
		}
		if e.Steps() >= b.limit {
			return NewUndecided(e.Steps())
		}
		e.Apply(tr)

		step := e.Steps()
		switch {
		case e.Tape.LeftBlank() && step > lastRightBlank && lastLeftBlank <= lastRightBlank:
			lastLeftBlank = step
			b.records = append(b.records, e.Tape.Window().Right)
			// the stride-4 check supersedes stride 2 once enough records
			// exist: some machines only repeat every second pass
			bouncingRight = b.repeatsAtStride(2)
			if len(b.records) > 13 {
				bouncingRight = b.repeatsAtStride(4)
			}

		case e.Tape.RightBlank() && step > lastLeftBlank && lastRightBlank <= lastLeftBlank:
			lastRightBlank = step
			b.records = append(b.records, e.Tape.Window().Left)
			if bouncingRight {
				if b.repeatsAtStride(2) || (len(b.records) > 13 && b.repeatsAtStride(4)) {
					return NewBouncerResult(step)
				}
			}
		}
	}
}

// repeatsAtStride checks the last three same-side records spaced stride
// record-pairs apart for the constant growth pattern.
func (b *Bouncer) repeatsAtStride(stride int) bool {
	if len(b.records) <= 3*stride+1 {
		return false
	}
	i := len(b.records) - 1
	s := stride
	return isBouncer3(
		newChanged(b.records[i-2*s], b.records[i-3*s]),
		newChanged(b.records[i-s], b.records[i-2*s]),
		newChanged(b.records[i], b.records[i-s]),
	)
}

// changed is the difference between two same-side records: the XOR pattern
// shifted down to its lowest set bit, and that bit's position.
type changed struct {
	pos     int
	pattern uint64
}

func newChanged(newer, older uint64) changed {
	x := newer ^ older
	tz := 0
	if x != 0 {
		tz = bits.TrailingZeros64(x)
	}
	return changed{pos: tz, pattern: x >> uint(tz)}
}

// isBouncer3 holds when three consecutive differences carry the same bit
// pattern at a nonzero, constant positional increment.
func isBouncer3(c0, c1, c2 changed) bool {
	return c0.pattern == c1.pattern && c1.pattern == c2.pattern &&
		c1.pos-c0.pos != 0 && c1.pos-c0.pos == c2.pos-c1.pos
}
