// Package bbfile reads and writes machine collections in two interchange
// formats: the plain text format (one compact transition table per line)
// and the bbchallenge seed database format, a binary file of fixed 30-byte
// records described at https://bbchallenge.org/method#format.
package bbfile
