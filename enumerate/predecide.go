package enumerate

import (
	"github.com/beaverkit/beaver/machine"
)

// Verdict is the outcome of a static table screening.
type Verdict uint8

const (
	// VerdictContinue passes the table on to the runtime deciders.
	VerdictContinue Verdict = iota
	// VerdictReject eliminates the table without simulation.
	VerdictReject
	// VerdictHalt settles the table outright: it halts on its first step.
	VerdictHalt
)

func (v Verdict) String() string {
	switch v {
	case VerdictContinue:
		return "continue"
	case VerdictReject:
		return "reject"
	case VerdictHalt:
		return "halt"
	}
	return "unknown"
}

// Reason classifies a VerdictReject.
type Reason uint8

const (
	// ReasonNone accompanies VerdictContinue and VerdictHalt.
	ReasonNone Reason = iota
	// ReasonStartNotRightToB rejects tables whose first field is anything
	// but 0RB or 1RB. Every other start is a halt (handled separately), a
	// self-loop, or a mirror or renaming of a machine with a canonical start.
	ReasonStartNotRightToB
	// ReasonHaltCount rejects tables without exactly one halting field. No
	// halt means no halting run; a second halt wastes a field a maximal
	// machine would use.
	ReasonHaltCount
	// ReasonOneDirection rejects tables whose 0-column moves only one way.
	// The head then sees nothing but blanks, so the run is trivially endless
	// or trivially short.
	ReasonOneDirection
	// ReasonStartCycle rejects tables that fall into a two-field loop over
	// blank tape right from the start.
	ReasonStartCycle
	// ReasonZeroWrites rejects tables whose 0-column never writes a 1: the
	// tape stays blank forever.
	ReasonZeroWrites
	// ReasonUnusedStates rejects tables that cannot visit every field, so a
	// smaller machine runs at least as long.
	ReasonUnusedStates
	// ReasonStateOrder rejects tables whose states are not first entered in
	// ascending order; renaming the states yields a table enumerated earlier.
	ReasonStateOrder

	reasonCount
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonStartNotRightToB:
		return "start_not_right_to_b"
	case ReasonHaltCount:
		return "halt_count"
	case ReasonOneDirection:
		return "one_direction"
	case ReasonStartCycle:
		return "start_cycle"
	case ReasonZeroWrites:
		return "zero_writes"
	case ReasonUnusedStates:
		return "unused_states"
	case ReasonStateOrder:
		return "state_order"
	}
	return "unknown"
}

// Reasons lists every reject reason, for reporting loops.
func Reasons() []Reason {
	out := make([]Reason, 0, reasonCount-1)
	for r := ReasonStartNotRightToB; r < reasonCount; r++ {
		out = append(out, r)
	}
	return out
}

// PruneCount tallies rejections per Reason. The zero value is ready to use.
type PruneCount [reasonCount]uint64

// Add records one rejection.
func (c *PruneCount) Add(r Reason) { c[r]++ }

// AddN records n rejections at once, for enumeration modes that jump over
// whole runs of rejected tables.
func (c *PruneCount) AddN(r Reason, n uint64) { c[r] += n }

// Get returns the tally for one reason.
func (c *PruneCount) Get(r Reason) uint64 { return c[r] }

// Total returns the number of rejections across all reasons.
func (c *PruneCount) Total() uint64 {
	var n uint64
	for _, v := range c {
		n += v
	}
	return n
}

// Merge folds another tally into c. Merging is commutative, so per-batch
// tallies can be combined in any order.
func (c *PruneCount) Merge(o PruneCount) {
	for r, v := range o {
		c[r] += v
	}
}

// Prescreen screens a table statically, without running it. The checks are
// ordered cheapest first and each assumes its predecessors passed; the
// returned Reason is meaningful only for VerdictReject.
func Prescreen(tb *machine.TransitionTable) (Verdict, Reason) {
	start := tb.Field(0)
	if start.IsHalt() {
		return VerdictHalt, ReasonNone
	}
	if start != machine.Transition0RB && start != machine.Transition1RB {
		return VerdictReject, ReasonStartNotRightToB
	}
	if tb.HaltFields() != 1 {
		return VerdictReject, ReasonHaltCount
	}
	if onlyOneDirection(tb) {
		return VerdictReject, ReasonOneDirection
	}
	if simpleStartCycle(tb) {
		return VerdictReject, ReasonStartCycle
	}
	if writesOnlyZero(tb) {
		return VerdictReject, ReasonZeroWrites
	}
	if unusedStates(tb) {
		return VerdictReject, ReasonUnusedStates
	}
	if statesOutOfOrder(tb) {
		return VerdictReject, ReasonStateOrder
	}
	return VerdictContinue, ReasonNone
}

// onlyOneDirection reports whether every non-halting 0-column transition
// moves the same way. The 1-column is irrelevant: a head that only ever
// moves one way never revisits a written cell.
func onlyOneDirection(tb *machine.TransitionTable) bool {
	allRight, allLeft := true, true
	for s := 1; s <= tb.NStates; s++ {
		t := tb.At(s, 0)
		if t.IsHalt() {
			continue
		}
		if !t.MovesRight() {
			allRight = false
		}
		if !t.MovesLeft() {
			allLeft = false
		}
	}
	return allRight || allLeft
}

// simpleStartCycle reports whether the first two fields trap the machine on
// blank tape. With the second field pointing back to state A the loop closes
// unless the head turns around onto a freshly written 1; a second field
// looping on its own state while the start wrote nothing is endless too.
func simpleStartCycle(tb *machine.TransitionTable) bool {
	start := tb.Field(0)
	second := tb.At(start.State(), 0)
	if second.State() == 1 {
		sameDir := (start.MovesRight() && second.MovesRight()) ||
			(start.MovesLeft() && second.MovesLeft())
		if start.WritesOne() && sameDir {
			return true
		}
		if sameDir || !second.WritesOne() {
			return true
		}
	}
	return !start.WritesOne() && second.State() == start.State()
}

// writesOnlyZero reports whether the 0-column never writes a 1. Such a
// machine only ever reads blanks, so the 1-column is dead weight.
func writesOnlyZero(tb *machine.TransitionTable) bool {
	for s := 1; s <= tb.NStates; s++ {
		if tb.At(s, 0).WritesOne() {
			return false
		}
	}
	return true
}

// unusedStates reports whether some field is provably never consulted. It
// follows the 0-column from the start while the tape is certainly blank,
// then over-approximates reachability by taking both columns of every state
// reached after that. Requires the start-field and direction checks to have
// passed already.
func unusedStates(tb *machine.TransitionTable) bool {
	var used [machine.MaxStates + 1][2]bool

	// First step lands on a blank, so only the 0-column of the target is
	// certainly consulted. State A itself may never be seen again.
	first := tb.Field(0).State()
	used[first][0] = true
	fieldsUsed := 1

	second := tb.At(first, 0).State()
	if second == 0 {
		return true
	}
	s0 := tb.At(second, 0).State()
	if s0 == 0 {
		return true
	}
	// From the third state on the tape content is unknown; both columns of
	// the second state count as reachable.
	used[second] = [2]bool{true, true}
	if second == first {
		fieldsUsed++
	} else {
		fieldsUsed += 2
	}

	stack := make([]int, 0, 2*machine.MaxStates+2)
	stack = append(stack, s0)
	if s1 := tb.At(second, 1).State(); s1 != s0 && s1 != 0 {
		stack = append(stack, s1)
	}
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !used[st][0] {
			if s := tb.At(st, 0).State(); s != 0 && s != st {
				stack = append(stack, s)
			}
			used[st][0] = true
			fieldsUsed++
		}
		if !used[st][1] {
			if s := tb.At(st, 1).State(); s != 0 && s != st {
				stack = append(stack, s)
			}
			used[st][1] = true
			fieldsUsed++
		}
	}

	return fieldsUsed < tb.NStates*machine.SymbolsPerState
}

// statesOutOfOrder reports whether some state is first reachable only
// through higher-numbered states. Renaming the states of such a table
// yields one with a smaller id, so it is a duplicate. Requires the start
// field to be 0RB or 1RB, making B the second state entered.
func statesOutOfOrder(tb *machine.TransitionTable) bool {
	for s := 2; s < tb.NStates; s++ {
		maxAllowed := s + 1
		if tb.At(s, 0).State() > maxAllowed && tb.At(s, 1).State() > maxAllowed {
			return true
		}
	}
	return false
}
