package decider

import "fmt"

// Kind is the top-level classification of a machine.
type Kind uint8

const (
	// Undecided means no verdict within the step ceiling.
	Undecided Kind = iota
	// Halted means the machine reached a halting transition.
	Halted
	// NonHalting means the machine provably never halts.
	NonHalting
)

// Reason details why a NonHalting verdict holds.
type Reason uint8

const (
	// ReasonNone is set on non-NonHalting results.
	ReasonNone Reason = iota
	// ReasonCycler marks an exact state+tape recurrence.
	ReasonCycler
	// ReasonBouncer marks a growing back-and-forth sweep.
	ReasonBouncer
	// ReasonTrivialPattern marks machines rejected by static table
	// analysis alone, without simulation.
	ReasonTrivialPattern
)

// Result is the outcome of deciding one machine.
//
// Steps is the halting step count for Halted, the step count at the moment
// of proof for NonHalting, and the number of steps run for Undecided.
// OnesWritten and TapeLength are only set for Halted. Period is only set
// for ReasonCycler and gives the cycle length in steps.
type Result struct {
	Kind        Kind
	Reason      Reason
	Steps       uint64
	OnesWritten uint64
	TapeLength  uint64
	Period      uint64
}

// NewHalted returns a Halted result with full detail.
func NewHalted(steps, ones, tapeLength uint64) Result {
	return Result{Kind: Halted, Steps: steps, OnesWritten: ones, TapeLength: tapeLength}
}

// NewUndecided returns an Undecided result after steps run.
func NewUndecided(steps uint64) Result {
	return Result{Kind: Undecided, Steps: steps}
}

// NewCyclerResult returns a NonHalting result for a cycle of the given
// period proved at the given step.
func NewCyclerResult(steps, period uint64) Result {
	return Result{Kind: NonHalting, Reason: ReasonCycler, Steps: steps, Period: period}
}

// NewBouncerResult returns a NonHalting result for a bouncer proved at the
// given step.
func NewBouncerResult(steps uint64) Result {
	return Result{Kind: NonHalting, Reason: ReasonBouncer, Steps: steps}
}

// NewTrivialPattern returns a NonHalting result for a machine rejected by
// static table analysis.
func NewTrivialPattern() Result {
	return Result{Kind: NonHalting, Reason: ReasonTrivialPattern}
}

func (k Kind) String() string {
	switch k {
	case Halted:
		return "halted"
	case NonHalting:
		return "non-halting"
	default:
		return "undecided"
	}
}

func (r Reason) String() string {
	switch r {
	case ReasonCycler:
		return "cycler"
	case ReasonBouncer:
		return "bouncer"
	case ReasonTrivialPattern:
		return "trivial-pattern"
	default:
		return "none"
	}
}

func (r Result) String() string {
	switch r.Kind {
	case Halted:
		return fmt.Sprintf("halted after %d steps (%d ones, tape %d)",
			r.Steps, r.OnesWritten, r.TapeLength)
	case NonHalting:
		if r.Reason == ReasonCycler {
			return fmt.Sprintf("non-halting: cycler (period %d, step %d)", r.Period, r.Steps)
		}
		return fmt.Sprintf("non-halting: %s (step %d)", r.Reason, r.Steps)
	default:
		return fmt.Sprintf("undecided after %d steps", r.Steps)
	}
}
