package bbfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/beaverkit/beaver/machine"
)

// Sentinel errors for the seed database format.
var (
	// ErrBadHeader indicates a truncated or malformed header block.
	ErrBadHeader = errors.New("bbfile: malformed seed database header")
	// ErrRecordRange indicates a record index at or past the database size.
	ErrRecordRange = errors.New("bbfile: record index out of range")
	// ErrBadRecord indicates an undecodable 30-byte record.
	ErrBadRecord = errors.New("bbfile: malformed machine record")
	// ErrSeedStates indicates a table whose state count the fixed-size
	// record cannot carry.
	ErrSeedStates = errors.New("bbfile: seed records hold exactly 5 states")
)

const (
	// recordBytes is the size of one record: 5 states x 2 symbols x 3 bytes.
	// The header occupies one record-sized block at the start of the file.
	recordBytes = 30
	seedStates  = 5
)

// SeedHeader is the leading block of a seed database. The three counts
// describe how the undecided machines were produced; Sorted tells whether
// records are ordered by their enumeration index.
type SeedHeader struct {
	UndecidedStepLimit uint32
	UndecidedTapeLimit uint32
	Records            uint32
	Sorted             bool
}

// SeedReader reads machines from a seed database by record index.
type SeedReader struct {
	r      io.ReadSeeker
	header SeedHeader
}

// NewSeedReader parses the header and positions the reader for record
// access.
func NewSeedReader(r io.ReadSeeker) (*SeedReader, error) {
	var buf [recordBytes]byte
	if _, err := io.ReadFull(r, buf[:13]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	h := SeedHeader{
		UndecidedStepLimit: binary.BigEndian.Uint32(buf[0:4]),
		UndecidedTapeLimit: binary.BigEndian.Uint32(buf[4:8]),
		Records:            binary.BigEndian.Uint32(buf[8:12]),
		Sorted:             buf[12] == 1,
	}
	return &SeedReader{r: r, header: h}, nil
}

// Header returns the parsed header block.
func (sr *SeedReader) Header() SeedHeader { return sr.header }

// Machine reads the record at index i. Seeking per call keeps this safe
// to use in any order; use Range for bulk sequential reads.
func (sr *SeedReader) Machine(i uint32) (machine.TransitionTable, error) {
	if i >= sr.header.Records {
		return machine.TransitionTable{}, ErrRecordRange
	}
	// Record 0 sits one block in, after the header.
	if _, err := sr.r.Seek(int64(i+1)*recordBytes, io.SeekStart); err != nil {
		return machine.TransitionTable{}, fmt.Errorf("bbfile: %w", err)
	}
	var buf [recordBytes]byte
	if _, err := io.ReadFull(sr.r, buf[:]); err != nil {
		return machine.TransitionTable{}, fmt.Errorf("%w: %w", ErrBadRecord, err)
	}
	return decodeRecord(buf[:])
}

// Range reads count consecutive records starting at first, clipped at the
// end of the database.
func (sr *SeedReader) Range(first uint32, count int) ([]machine.TransitionTable, error) {
	if first >= sr.header.Records {
		return nil, ErrRecordRange
	}
	if rest := int(sr.header.Records - first); count > rest {
		count = rest
	}
	if _, err := sr.r.Seek(int64(first+1)*recordBytes, io.SeekStart); err != nil {
		return nil, fmt.Errorf("bbfile: %w", err)
	}
	out := make([]machine.TransitionTable, 0, count)
	var buf [recordBytes]byte
	for n := 0; n < count; n++ {
		if _, err := io.ReadFull(sr.r, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		tb, err := decodeRecord(buf[:])
		if err != nil {
			return nil, err
		}
		out = append(out, tb)
	}
	return out, nil
}

// WriteSeedFile writes a complete seed database: header block, then one
// record per table. Every table must have exactly 5 states. The header's
// record count is taken from len(tables).
func WriteSeedFile(w io.Writer, header SeedHeader, tables []machine.TransitionTable) error {
	var buf [recordBytes]byte
	binary.BigEndian.PutUint32(buf[0:4], header.UndecidedStepLimit)
	binary.BigEndian.PutUint32(buf[4:8], header.UndecidedTapeLimit)
	binary.BigEndian.PutUint32(buf[8:12], uint32(len(tables)))
	if header.Sorted {
		buf[12] = 1
	}
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("bbfile: %w", err)
	}
	for _, tb := range tables {
		if tb.NStates != seedStates {
			return ErrSeedStates
		}
		if err := encodeRecord(&buf, &tb); err != nil {
			return err
		}
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("bbfile: %w", err)
		}
	}
	return nil
}

// decodeRecord unpacks 10 (symbol, direction, state) triples with R=0 and
// L=1; an all-zero triple is the undefined transition, a non-zero triple
// with state 0 an explicit halt.
func decodeRecord(rec []byte) (machine.TransitionTable, error) {
	tb, err := machine.NewTable(seedStates)
	if err != nil {
		return machine.TransitionTable{}, err
	}
	for f := 0; f < tb.FieldCount(); f++ {
		sym, dir, state := rec[f*3], rec[f*3+1], rec[f*3+2]
		if sym == 0 && dir == 0 && state == 0 {
			tb.SetField(f, machine.TransitionUndefined)
			continue
		}
		if state > seedStates {
			return machine.TransitionTable{}, ErrBadRecord
		}
		t, err := machine.NewTransition(sym, dir, state)
		if err != nil {
			return machine.TransitionTable{}, fmt.Errorf("%w: %w", ErrBadRecord, err)
		}
		tb.SetField(f, t)
	}
	return tb, nil
}

func encodeRecord(buf *[recordBytes]byte, tb *machine.TransitionTable) error {
	for f := 0; f < tb.FieldCount(); f++ {
		t := tb.Field(f)
		p := f * 3
		if t.IsUndefined() {
			buf[p], buf[p+1], buf[p+2] = 0, 0, 0
			continue
		}
		buf[p] = t.Symbol()
		if t.MovesLeft() {
			buf[p+1] = 1
		} else {
			buf[p+1] = 0
		}
		buf[p+2] = byte(t.State())
	}
	return nil
}
