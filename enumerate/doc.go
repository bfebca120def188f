// Package enumerate generates every transition table for a given state
// count in canonical id order and statically screens each one before any
// simulation is spent on it.
//
// The Enumerator is an odometer over the table's fields: field A0 is the
// fastest-moving digit, so the produced sequence of ids is exactly
// 0, 1, 2, ... and any position can be re-entered with Seek. A reduced
// mode restricts field A0 to its two canonical start values and accounts
// for the ids it jumps over instead of emitting them.
//
// Prescreen inspects a table without running it. It either settles the
// machine outright (halts on the first step), rejects it with a Reason
// (cannot run forever at maximal length, or is a renaming of a machine
// enumerated earlier), or passes it on to the deciders.
package enumerate
