// Package beaver is a toolkit for busy beaver searches: enumerate every
// small Turing machine, prove most of them never halt, and find the
// longest-running ones that do.
//
// 🚀 What is beaver?
//
//	A pure-Go engine for sweeping whole machine spaces:
//		• Compact machines: bit-packed transitions & tables, text parsing
//		• Dense ids: a mixed-radix codec mapping table ↔ integer
//		• Fast simulation: bit-packed tape with a 128-cell head window
//		• Deciders: cycler & bouncer proofs of non-halting
//		• Static screening: most tables eliminated without a single step
//		• Batched sweeps: parallel, resumable, reproducible
//
// Everything is organized under focused subpackages:
//
//	machine/   — transitions, tables & the standard text format
//	codec/     — machine id encoding & decoding
//	engine/    — tape and step execution
//	decider/   — halt runner, cycler, bouncer & the decider chain
//	enumerate/ — id-ordered table generation & static screening
//	search/    — batch orchestration, summaries, Prometheus metrics
//	store/     — SQLite persistence for interrupted sweeps
//	bbfile/    — text & bbchallenge seed database interchange
//	cmd/       — the bbsearch command line tool
//
// Quick example:
//
//	tb, _ := machine.ParseTable("1RB1LB_1LA0LC_1RZ1LD_1RD0RA")
//	res := decider.RunTable(tb, 1000)
//	fmt.Println(res) // halted after 107 steps
//
// Id spaces grow as (4n+1)^(2n): 6561 machines for 2 states, 6.9·10^9 for
// 4, and past the 64-bit horizon at 7 — state counts whose space does not
// fit the id type are rejected up front.
//
//	go get github.com/beaverkit/beaver
package beaver
