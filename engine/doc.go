// Package engine executes Turing machines step by step on a bit-packed tape.
//
// The tape grows on demand in 64-cell words and additionally maintains a
// 128-cell window centered on the head: the head cell is always bit 63 of
// the window's right half, cells to the left fill the higher bits. The
// window shifts by one bit per move, so classification procedures get an
// O(1) snapshot of the neighborhood every step without touching the word
// store. The word store remains the ground truth; blankness checks beyond
// the window and the final ones count read from it.
//
// An Engine is reusable: Load resets it for the next machine, keeping the
// allocated tape words. Step ceilings and halting policy belong to the
// callers (package decider).
package engine
