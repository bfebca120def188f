// Package decider classifies Turing machines as halting, provably
// non-halting, or undecided within a step ceiling.
//
// Three procedures are provided:
//
//   - Halt: plain bounded simulation. Finds halts and gives the full halt
//     detail (steps, ones written, tape length); everything else is
//     Undecided.
//   - Cycler: records every step and detects exact state+tape recurrences.
//     Catches the vast majority of non-halting machines within a small
//     step limit, and finds quick halts on the way.
//   - Bouncer: detects machines that sweep back and forth while growing
//     the tape by a fixed pattern each pass. Catches most of what the
//     Cycler leaves.
//
// Chain composes them in the effective order (cycler first with a small
// limit, then bouncer) and is what the batch orchestrator runs per machine.
//
// Deciders are reusable across machines but not safe for concurrent use;
// the worker pool gives each worker its own Chain.
package decider
