// Package machine: core types and sentinel errors.
package machine

import "errors"

// Sentinel errors for parsing and table construction.
var (
	// ErrInvalidSymbol indicates a transition symbol other than '0' or '1'.
	ErrInvalidSymbol = errors.New("machine: transition symbol must be '0' or '1'")
	// ErrInvalidDirection indicates a direction other than 'L' or 'R'.
	ErrInvalidDirection = errors.New("machine: transition direction must be 'L' or 'R'")
	// ErrInvalidState indicates a next-state outside A..Y / 1..9 / Z(halt).
	ErrInvalidState = errors.New("machine: transition state out of range")
	// ErrStateCount indicates a state count outside 1..MaxStates.
	ErrStateCount = errors.New("machine: state count out of range")
	// ErrMalformedTable indicates a table text whose rows are missing or uneven.
	ErrMalformedTable = errors.New("machine: malformed transition table text")
)

// MaxStates is the largest state count a TransitionTable can hold.
// Tables this wide can be loaded and simulated; the id codec constrains
// enumeration more tightly (see package codec).
const MaxStates = 7

// SymbolsPerState is the tape alphabet size; two transitions per state.
const SymbolsPerState = 2

// TableSize is the flat transition array length. Row 0 is reserved
// (state numbering starts at 1), so index = state*2 + symbol.
const TableSize = (MaxStates + 1) * SymbolsPerState
