package engine

import "math/bits"

// headBit is the window bit holding the head cell: bit 63 of the right half.
const headBit = 63

// windowHalf is the number of cells each window half covers.
const windowHalf = 64

// initialWords sizes the word store so short runs never reallocate.
const initialWords = 8

// Window is the 128-cell snapshot around the head. The head cell is the top
// bit of Right; Right's lower bits are the cells to the right of the head,
// Left holds the 64 cells to the left (nearest cell in Left's lowest bit).
type Window struct {
	Left, Right uint64
}

// Equal reports bitwise equality.
func (w Window) Equal(o Window) bool { return w == o }

// Masked returns the window restricted to the set bits of mask.
func (w Window) Masked(mask Window) Window {
	return Window{Left: w.Left & mask.Left, Right: w.Right & mask.Right}
}

// LeftEmpty reports whether the head cell and everything left of it within
// the window is blank.
func (w Window) LeftEmpty() bool { return w.Left == 0 && w.Right&(1<<headBit) == 0 }

// RightEmpty reports whether the head cell and everything right of it
// within the window is blank.
func (w Window) RightEmpty() bool { return w.Right == 0 }

// Tape is a two-way unbounded binary tape. Cells default to 0. Positions
// are absolute: the head starts at 0, left is negative.
type Tape struct {
	window Window

	// words is the backing store; words[i] bit 63 is the leftmost of the
	// 64 cells starting at base+64i.
	words []uint64
	base  int64

	head             int64
	minHead, maxHead int64
}

// NewTape returns an empty tape with the head at position 0.
func NewTape() *Tape {
	t := &Tape{}
	t.Reset()
	return t
}

// Reset blanks the tape for the next run, keeping the word allocation.
func (t *Tape) Reset() {
	if t.words == nil {
		t.words = make([]uint64, initialWords)
	} else {
		for i := range t.words {
			t.words[i] = 0
		}
	}
	t.base = -int64(len(t.words)) / 2 * 64
	t.window = Window{}
	t.head = 0
	t.minHead = 0
	t.maxHead = 0
}

// Read returns the symbol under the head.
func (t *Tape) Read() uint8 { return uint8(t.window.Right >> headBit & 1) }

// Write sets the head cell to 1 or 0, in both the window and the store.
func (t *Tape) Write(one bool) {
	if one {
		t.window.Right |= 1 << headBit
	} else {
		t.window.Right &^= 1 << headBit
	}
	t.setCell(t.head, one)
}

// MoveRight shifts the head one cell right. The cell entering the window's
// far right edge is fetched from the store.
func (t *Tape) MoveRight() {
	in := t.cell(t.head + windowHalf)
	t.head++
	if t.head > t.maxHead {
		t.maxHead = t.head
	}
	t.window.Left = t.window.Left<<1 | t.window.Right>>headBit
	t.window.Right = t.window.Right<<1 | in
}

// MoveLeft shifts the head one cell left.
func (t *Tape) MoveLeft() {
	in := t.cell(t.head - windowHalf - 1)
	t.head--
	if t.head < t.minHead {
		t.minHead = t.head
	}
	t.window.Right = t.window.Right>>1 | t.window.Left<<headBit
	t.window.Left = t.window.Left>>1 | in<<headBit
}

// Window returns the current 128-cell snapshot.
func (t *Tape) Window() Window { return t.window }

// Head returns the absolute head position.
func (t *Tape) Head() int64 { return t.head }

// CellsVisited returns the number of distinct cells the head has entered.
func (t *Tape) CellsVisited() uint64 { return uint64(t.maxHead - t.minHead + 1) }

// CountOnes returns the number of 1-cells on the whole tape.
func (t *Tape) CountOnes() uint64 {
	var n int
	for _, w := range t.words {
		n += bits.OnesCount64(w)
	}
	return uint64(n)
}

// LeftBlank reports whether the head cell and the entire tape left of it is
// blank, including cells beyond the window.
func (t *Tape) LeftBlank() bool {
	return t.window.LeftEmpty() && !t.anyOneBelow(t.head-windowHalf)
}

// RightBlank reports whether the head cell and the entire tape right of it
// is blank, including cells beyond the window.
func (t *Tape) RightBlank() bool {
	return t.window.RightEmpty() && !t.anyOneAbove(t.head+windowHalf-1)
}

// cell reads position p from the store; cells outside the store are 0.
func (t *Tape) cell(p int64) uint64 {
	idx := p - t.base
	if idx < 0 || idx >= int64(len(t.words))*64 {
		return 0
	}
	return t.words[idx>>6] >> (headBit - idx&63) & 1
}

// setCell writes position p into the store, growing it as needed. Clearing
// a cell outside the store is a no-op.
func (t *Tape) setCell(p int64, one bool) {
	idx := p - t.base
	if idx < 0 {
		if !one {
			return
		}
		t.growLeft(-idx)
		idx = p - t.base
	} else if idx >= int64(len(t.words))*64 {
		if !one {
			return
		}
		t.growRight(idx - int64(len(t.words))*64 + 1)
	}
	bit := uint64(1) << (headBit - idx&63)
	if one {
		t.words[idx>>6] |= bit
	} else {
		t.words[idx>>6] &^= bit
	}
}

// anyOneBelow reports a set cell at a position strictly below p.
func (t *Tape) anyOneBelow(p int64) bool {
	idx := p - t.base
	if idx <= 0 {
		return false
	}
	if idx >= int64(len(t.words))*64 {
		idx = int64(len(t.words)) * 64
	}
	w := idx >> 6
	for i := int64(0); i < w; i++ {
		if t.words[i] != 0 {
			return true
		}
	}
	if w < int64(len(t.words)) && idx&63 != 0 {
		// keep only the idx&63 leftmost cells of the partial word
		if t.words[w]>>(64-idx&63)<<(64-idx&63) != 0 {
			return true
		}
	}
	return false
}

// anyOneAbove reports a set cell at a position strictly above p.
func (t *Tape) anyOneAbove(p int64) bool {
	idx := p - t.base + 1
	if idx >= int64(len(t.words))*64 {
		return false
	}
	if idx < 0 {
		idx = 0
	}
	w := idx >> 6
	if idx&63 != 0 {
		if t.words[w]<<(idx&63) != 0 {
			return true
		}
		w++
	}
	for i := w; i < int64(len(t.words)); i++ {
		if t.words[i] != 0 {
			return true
		}
	}
	return false
}

// growLeft prepends at least need cells worth of words.
func (t *Tape) growLeft(need int64) {
	k := int((need + 63) >> 6)
	if k < len(t.words) {
		k = len(t.words)
	}
	grown := make([]uint64, k+len(t.words))
	copy(grown[k:], t.words)
	t.words = grown
	t.base -= int64(k) * 64
}

// growRight appends at least need cells worth of words.
func (t *Tape) growRight(need int64) {
	k := int((need + 63) >> 6)
	if k < len(t.words) {
		k = len(t.words)
	}
	t.words = append(t.words, make([]uint64, k)...)
}
