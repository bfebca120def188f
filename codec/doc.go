// Package codec maps transition tables to dense 64-bit machine ids and back.
//
// A table with n states has 2n fields, each holding one of 4n+1 possible
// transitions (the canonical permutation order of package machine). The id
// is the mixed-radix number over those fields with field A0 as the least
// significant digit:
//
//	id = Σ digit(field k) · (4n+1)^k
//
// Ids are dense and canonical: every id below TotalMachineCount(n) decodes
// to exactly one table, Encode(Decode(id)) == id, and tables that differ in
// any field map to different ids. State counts whose id space does not fit
// in uint64 are rejected up front with ErrStateCount rather than wrapping.
package codec
