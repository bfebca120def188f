package engine

import "github.com/beaverkit/beaver/machine"

// startState is state A; the head reads a blank tape, so the first lookup
// always hits flat index 2.
const startState = 1

// Engine drives one machine. The caller owns the loop: Fetch advances the
// step counter and yields the next transition, the caller decides whether
// to Apply it, stop on a halt via Finish, or give up at its step ceiling.
type Engine struct {
	Table machine.TransitionTable
	Tape  *Tape

	steps uint64
	state int
}

// New returns an Engine with an empty tape; Load it before stepping.
func New() *Engine {
	return &Engine{Tape: NewTape()}
}

// Load resets the engine for tb, reusing the tape allocation.
func (e *Engine) Load(tb machine.TransitionTable) {
	e.Table = tb
	e.Tape.Reset()
	e.steps = 0
	e.state = startState
}

// Steps returns the number of transitions fetched so far.
func (e *Engine) Steps() uint64 { return e.steps }

// State returns the current state, 1-based.
func (e *Engine) State() int { return e.state }

// FieldIndex returns the flat table index the next Fetch will consult.
func (e *Engine) FieldIndex() int {
	return e.state*machine.SymbolsPerState + int(e.Tape.Read())
}

// Fetch looks up the transition for the current state and head symbol and
// counts the step. The tape is not touched yet.
func (e *Engine) Fetch() (machine.Transition, int) {
	e.steps++
	f := e.FieldIndex()
	return e.Table.Transitions[f], f
}

// Apply executes a non-halting transition: write, move, switch state.
func (e *Engine) Apply(tr machine.Transition) {
	e.Tape.Write(tr.WritesOne())
	if tr.MovesRight() {
		e.Tape.MoveRight()
	} else {
		e.Tape.MoveLeft()
	}
	e.state = tr.State()
}

// Finish executes a halting transition. Explicit halts ("1RZ") still write
// their symbol; the undefined entry leaves the cell untouched. The halting
// step itself was already counted by Fetch.
func (e *Engine) Finish(tr machine.Transition) {
	if !tr.IsUndefined() {
		e.Tape.Write(tr.WritesOne())
	}
}
