// Package machine defines the bit-packed representation of Turing machine
// transition tables used throughout github.com/beaverkit/beaver.
//
// A Transition packs the written symbol, the head direction and the next
// state into a single byte. A TransitionTable holds one Transition per
// (state, read-symbol) pair in a flat array indexed by state*2+symbol,
// which keeps the hot simulation lookup a single shift-free load.
//
// The package also implements the standard compact text format
// ("1RB1LC_..."), the canonical transition permutation order used by the
// id codec, and the table-shaped constants the enumerator seeds from.
//
// All types are plain values; copying a TransitionTable copies the table.
package machine
