package machine

import "strings"

// TransitionTable is a complete machine: one Transition per (state, symbol)
// pair. Transitions is indexed state*2+symbol; row 0 is reserved so that a
// Transition's TargetIndex lands on the right slot without adjustment. The
// first active slot (state A reading 0) is index 2.
type TransitionTable struct {
	Transitions [TableSize]Transition
	NStates     int
}

// fieldBase is the flat index of field 0 (state A, symbol 0).
const fieldBase = 2

// NewTable returns an empty table for nStates states, every field "---".
func NewTable(nStates int) (TransitionTable, error) {
	if nStates < 1 || nStates > MaxStates {
		return TransitionTable{}, ErrStateCount
	}
	tb := TransitionTable{NStates: nStates}
	for f := 0; f < tb.FieldCount(); f++ {
		tb.Transitions[fieldBase+f] = TransitionUndefined
	}
	return tb, nil
}

// FieldCount returns the number of assignable fields, 2*NStates.
func (tb *TransitionTable) FieldCount() int { return tb.NStates * SymbolsPerState }

// At returns the transition for state (1-based) reading symbol (0/1).
func (tb *TransitionTable) At(state, symbol int) Transition {
	return tb.Transitions[state*SymbolsPerState+symbol]
}

// Field returns field f in canonical order: f = (state-1)*2 + symbol,
// so field 0 is A0, field 1 is A1, field 2 is B0, and so on.
func (tb *TransitionTable) Field(f int) Transition {
	return tb.Transitions[fieldBase+f]
}

// SetField assigns field f.
func (tb *TransitionTable) SetField(f int, t Transition) {
	tb.Transitions[fieldBase+f] = t
}

// HaltFields returns how many fields halt the machine.
func (tb *TransitionTable) HaltFields() int {
	n := 0
	for f := 0; f < tb.FieldCount(); f++ {
		if tb.Field(f).IsHalt() {
			n++
		}
	}
	return n
}

// String renders the standard compact text format: per-state rows of two
// transitions joined by '_', e.g. "1RB1LB_1LA---" for a 2-state machine.
func (tb TransitionTable) String() string {
	var sb strings.Builder
	sb.Grow(tb.NStates*7 - 1)
	for s := 1; s <= tb.NStates; s++ {
		if s > 1 {
			sb.WriteByte('_')
		}
		sb.WriteString(tb.At(s, 0).String())
		sb.WriteString(tb.At(s, 1).String())
	}
	return sb.String()
}

// ParseTable parses the standard compact text format. The state count is
// taken from the number of '_'-separated rows; each row must hold exactly
// two three-character transitions.
func ParseTable(text string) (TransitionTable, error) {
	rows := strings.Split(text, "_")
	tb, err := NewTable(len(rows))
	if err != nil {
		return TransitionTable{}, err
	}
	for i, row := range rows {
		if len(row) != 6 {
			return TransitionTable{}, ErrMalformedTable
		}
		for sym := 0; sym < 2; sym++ {
			t, err := ParseTransition(row[sym*3 : sym*3+3])
			if err != nil {
				return TransitionTable{}, err
			}
			if t.State() > tb.NStates {
				return TransitionTable{}, ErrInvalidState
			}
			tb.SetField((i)*SymbolsPerState+sym, t)
		}
	}
	return tb, nil
}
