package enumerate

import (
	"errors"

	"github.com/beaverkit/beaver/codec"
	"github.com/beaverkit/beaver/machine"
)

// ErrExhausted indicates a Seek past the end of the id space.
var ErrExhausted = errors.New("enumerate: machine id past end of id space")

// Enumerator walks the id space of one state count in ascending order. The
// table fields form an odometer with field A0 as the fastest digit, so the
// table handed out for position k is exactly the codec decoding of id k.
//
// The table returned by Next is reused between calls; callers that retain
// it across iterations must copy it. An Enumerator is not safe for
// concurrent use — give each worker its own.
type Enumerator struct {
	nStates int
	radix   uint64
	total   uint64
	perms   []machine.Transition
	digits  []int
	table   machine.TransitionTable
	emit    machine.TransitionTable
	next    uint64
	reduced bool
	skipped uint64
}

// New returns an Enumerator positioned at id 0.
func New(nStates int) (*Enumerator, error) {
	total, err := codec.TotalMachineCount(nStates)
	if err != nil {
		return nil, err
	}
	perms, err := machine.AllTransitions(nStates)
	if err != nil {
		return nil, err
	}
	tb, err := machine.NewTable(nStates)
	if err != nil {
		return nil, err
	}
	e := &Enumerator{
		nStates: nStates,
		radix:   uint64(4*nStates + 1),
		total:   total,
		perms:   perms,
		digits:  make([]int, tb.FieldCount()),
		table:   tb,
	}
	for f := range e.digits {
		e.table.SetField(f, perms[0])
	}
	return e, nil
}

// NewReduced returns an Enumerator that emits only tables whose first field
// is 0RB or 1RB and counts everything it jumps over; see Skipped. The ids it
// emits are the same canonical ids the full walk would assign.
func NewReduced(nStates int) (*Enumerator, error) {
	e, err := New(nStates)
	if err != nil {
		return nil, err
	}
	e.reduced = true
	return e, nil
}

// NStates returns the state count being enumerated.
func (e *Enumerator) NStates() int { return e.nStates }

// Total returns the size of the id space.
func (e *Enumerator) Total() uint64 { return e.total }

// Skipped returns the number of ids jumped over in reduced mode since the
// last Seek (or since construction). Always zero for a full Enumerator.
func (e *Enumerator) Skipped() uint64 { return e.skipped }

// Seek positions the Enumerator so that the following Next emits id (or, in
// reduced mode, the first emittable id at or after it). Seeking to Total is
// allowed and yields an exhausted Enumerator. The skip counter resets.
func (e *Enumerator) Seek(id codec.MachineID) error {
	if uint64(id) > e.total {
		return ErrExhausted
	}
	rem := uint64(id)
	for f := range e.digits {
		d := int(rem % e.radix)
		rem /= e.radix
		e.digits[f] = d
		e.table.SetField(f, e.perms[d])
	}
	e.next = uint64(id)
	e.skipped = 0
	return nil
}

// Next emits the table at the current position and advances. ok is false
// once the id space is exhausted. The returned pointer aliases internal
// state valid until the next call.
func (e *Enumerator) Next() (codec.MachineID, *machine.TransitionTable, bool) {
	for e.reduced {
		d := e.digits[0]
		if d >= 2 && d <= 3 {
			break
		}
		if d > 3 {
			// Jump to the end of the current A0 cycle.
			skip := e.radix - uint64(d)
			if e.next+skip >= e.total {
				e.skipped += e.total - e.next
				e.next = e.total
				return 0, nil, false
			}
			e.skipped += skip
			e.next += skip
			e.digits[0] = 0
			e.table.SetField(0, e.perms[0])
			e.bump(1)
			continue
		}
		// d < 2: jump to 0RB within the current cycle.
		skip := uint64(2 - d)
		if e.next+skip >= e.total {
			e.skipped += e.total - e.next
			e.next = e.total
			return 0, nil, false
		}
		e.skipped += skip
		e.next += skip
		e.digits[0] = 2
		e.table.SetField(0, e.perms[2])
	}
	if e.next >= e.total {
		return 0, nil, false
	}
	id := codec.MachineID(e.next)
	// Snapshot before advancing the odometer: the working table already
	// holds the digits of the position after this one once bump runs.
	e.emit = e.table
	e.next++
	e.bump(0)
	return id, &e.emit, true
}

// bump increments the odometer digit at field f, carrying upward. A carry
// out of the last field leaves all digits zero; the exhaustion check in
// Next relies on the id counter instead.
func (e *Enumerator) bump(f int) {
	for ; f < len(e.digits); f++ {
		e.digits[f]++
		if e.digits[f] < len(e.perms) {
			e.table.SetField(f, e.perms[e.digits[f]])
			return
		}
		e.digits[f] = 0
		e.table.SetField(f, e.perms[0])
	}
}
