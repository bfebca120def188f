package codec

import (
	"errors"
	"math"

	"github.com/beaverkit/beaver/machine"
)

// Sentinel errors for codec operations.
var (
	// ErrStateCount indicates a state count whose id space exceeds uint64.
	ErrStateCount = errors.New("codec: state count not representable in 64-bit id space")
	// ErrIDOutOfRange indicates an id at or above TotalMachineCount.
	ErrIDOutOfRange = errors.New("codec: machine id out of range for state count")
)

// MachineID is the dense mixed-radix index of a transition table.
type MachineID uint64

// MaxStates is the largest state count whose full id space fits in uint64:
// (4·7+1)^14 overflows, (4·6+1)^12 does not.
const MaxStates = 6

// TotalMachineCount returns (4n+1)^(2n), the number of distinct n-state
// tables, or ErrStateCount when n is outside 1..MaxStates.
func TotalMachineCount(nStates int) (uint64, error) {
	if nStates < 1 || nStates > MaxStates {
		return 0, ErrStateCount
	}
	base := uint64(4*nStates + 1)
	total := uint64(1)
	for i := 0; i < 2*nStates; i++ {
		if total > math.MaxUint64/base {
			return 0, ErrStateCount
		}
		total *= base
	}
	return total, nil
}

// Encode returns the id of tb. Explicit halt entries (e.g. "1RZ") share the
// digit of "---": the enumerated space carries a single halt value per field.
func Encode(tb *machine.TransitionTable) (MachineID, error) {
	if tb.NStates < 1 || tb.NStates > MaxStates {
		return 0, ErrStateCount
	}
	radix := uint64(4*tb.NStates + 1)
	var id uint64
	// Horner from the most significant field down; A0 ends least significant.
	for f := tb.FieldCount() - 1; f >= 0; f-- {
		id = id*radix + uint64(digit(tb.Field(f), tb.NStates))
	}
	return MachineID(id), nil
}

// Decode reconstructs the table for id within the nStates id space.
func Decode(id MachineID, nStates int) (machine.TransitionTable, error) {
	total, err := TotalMachineCount(nStates)
	if err != nil {
		return machine.TransitionTable{}, err
	}
	if uint64(id) >= total {
		return machine.TransitionTable{}, ErrIDOutOfRange
	}
	perms, err := machine.AllTransitions(nStates)
	if err != nil {
		return machine.TransitionTable{}, err
	}
	tb, err := machine.NewTable(nStates)
	if err != nil {
		return machine.TransitionTable{}, err
	}
	radix := MachineID(4*nStates + 1)
	for f := 0; f < tb.FieldCount(); f++ {
		tb.SetField(f, perms[id%radix])
		id /= radix
	}
	return tb, nil
}

// digit is the position of t in the canonical permutation order for
// nStates: right block first, then left block, halt last.
func digit(t machine.Transition, nStates int) int {
	if t.IsHalt() {
		return 4 * nStates
	}
	d := (t.State()-1)*2 + int(t.Symbol())
	if t.MovesLeft() {
		d += 2 * nStates
	}
	return d
}
