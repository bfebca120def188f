// Package store persists sweep progress in a single SQLite database so a
// sweep can be interrupted and resumed. Each finished batch is written in
// one transaction: its summary row plus the undecided ids it found. On
// restart the stored batches seed the fold and only the missing ones run.
package store
