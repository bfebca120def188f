package machine

// Transition packs one table entry into a byte:
//
//	bit  0   : symbol written (0 or 1)
//	bits 1–4 : next state, pre-shifted so the value doubles as a row offset
//	bits 6–7 : direction (11 right, 01 left, 10 undefined)
//
// Next state 0 marks a halting transition. The undefined direction marks
// the textual "---" entry, which halts without writing.
type Transition uint8

const (
	symbolMask Transition = 0b0000_0001
	stateMask  Transition = 0b0001_1110
	dirMask    Transition = 0b1100_0000

	dirRight     Transition = 0b1100_0000
	dirLeft      Transition = 0b0100_0000
	dirUndefined Transition = 0b1000_0000

	// indexMask extracts state*2+symbol, the flat table offset of the
	// row/column this transition jumps to.
	indexMask Transition = 0b0001_1111
)

// Distinguished transitions.
const (
	// TransitionUnused fills table slots beyond the machine's state count.
	TransitionUnused Transition = 0
	// TransitionUndefined is the "---" halt entry: no write, no move.
	TransitionUndefined Transition = dirUndefined
	// Transition0RB writes 0, moves right, enters state B.
	Transition0RB Transition = dirRight | 2<<1
	// Transition1RB writes 1, moves right, enters state B.
	Transition1RB Transition = dirRight | 2<<1 | 1
)

// StartFieldTransitions lists the only two values the first table field can
// take under canonical enumeration: a machine not moving right into a fresh
// state on its first step is a mirror or renaming of one that does.
var StartFieldTransitions = [2]Transition{Transition0RB, Transition1RB}

// NewTransition builds a Transition from symbol (0/1), direction
// (0 right, 1 left) and next state (1..MaxStates, 0 for halt).
func NewTransition(symbol, direction, state uint8) (Transition, error) {
	if symbol > 1 {
		return 0, ErrInvalidSymbol
	}
	if state > MaxStates {
		return 0, ErrInvalidState
	}
	t := Transition(symbol) | Transition(state)<<1
	switch direction {
	case 0:
		t |= dirRight
	case 1:
		t |= dirLeft
	default:
		return 0, ErrInvalidDirection
	}
	return t, nil
}

// Symbol returns the written symbol, 0 or 1.
func (t Transition) Symbol() uint8 { return uint8(t & symbolMask) }

// WritesOne reports whether the transition writes symbol 1.
func (t Transition) WritesOne() bool { return t&symbolMask != 0 }

// State returns the next state, 1..MaxStates, or 0 for halt.
func (t Transition) State() int { return int(t&stateMask) >> 1 }

// TargetIndex returns state*2+symbol: the flat table index of the slot the
// machine will consult after taking this transition when the head reads the
// symbol just written.
func (t Transition) TargetIndex() int { return int(t & indexMask) }

// MovesRight reports a rightward head move.
func (t Transition) MovesRight() bool { return t&dirMask == dirRight }

// MovesLeft reports a leftward head move.
func (t Transition) MovesLeft() bool { return t&dirMask == dirLeft }

// Shift returns the head displacement of the move: +1 right, -1 left.
func (t Transition) Shift() int {
	if t.MovesRight() {
		return 1
	}
	return -1
}

// IsHalt reports whether the transition halts the machine
// (next state 0, covering both "---" and explicit xRZ entries).
func (t Transition) IsHalt() bool { return t&stateMask == 0 }

// IsUndefined reports the "---" entry specifically.
func (t Transition) IsUndefined() bool { return t&dirMask == dirUndefined }

// IsUnused reports an all-zero slot past the machine's state count.
func (t Transition) IsUnused() bool { return t == TransitionUnused }

// String renders the three-character text form, e.g. "1RB", "0LA", "---".
func (t Transition) String() string {
	if t.IsUndefined() {
		return "---"
	}
	b := [3]byte{'0', '?', 'Z'}
	if t.WritesOne() {
		b[0] = '1'
	}
	switch {
	case t.MovesRight():
		b[1] = 'R'
	case t.MovesLeft():
		b[1] = 'L'
	}
	if s := t.State(); s != 0 {
		b[2] = 'A' + byte(s) - 1
	}
	return string(b[:])
}

// ParseTransition parses a three-character text form. Accepted states are
// 'A'..'Y' and '1'..'9' up to MaxStates, with 'Z' or '0' meaning halt;
// "---" yields TransitionUndefined.
func ParseTransition(s string) (Transition, error) {
	if len(s) != 3 {
		return 0, ErrMalformedTable
	}
	if s == "---" {
		return TransitionUndefined, nil
	}
	var t Transition
	switch s[0] {
	case '0':
	case '1':
		t = 1
	default:
		return 0, ErrInvalidSymbol
	}
	switch c := s[2]; {
	case c == 'Z' || c == '0':
		// halt: state bits stay zero
	case c >= 'A' && c <= 'Y':
		n := Transition(c - 'A' + 1)
		if n > MaxStates {
			return 0, ErrInvalidState
		}
		t |= n << 1
	case c >= '1' && c <= '9':
		n := Transition(c - '0')
		if n > MaxStates {
			return 0, ErrInvalidState
		}
		t |= n << 1
	default:
		return 0, ErrInvalidState
	}
	switch s[1] {
	case 'R':
		t |= dirRight
	case 'L':
		t |= dirLeft
	default:
		return 0, ErrInvalidDirection
	}
	return t, nil
}

// AllTransitions returns the canonical permutation order for one table
// field with nStates states: 0R1, 1R1, ..., 0Rn, 1Rn, then the left-moving
// block in the same pattern, then "---" last. Its length is 4*nStates+1 and
// its index order defines the digit values of the id codec, so 0RB sits at
// position 2 and 1RB at position 3.
func AllTransitions(nStates int) ([]Transition, error) {
	if nStates < 1 || nStates > MaxStates {
		return nil, ErrStateCount
	}
	out := make([]Transition, 0, 4*nStates+1)
	for dir := uint8(0); dir < 2; dir++ {
		for s := 1; s <= nStates; s++ {
			for sym := uint8(0); sym < 2; sym++ {
				t, err := NewTransition(sym, dir, uint8(s))
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
		}
	}
	out = append(out, TransitionUndefined)
	return out, nil
}
