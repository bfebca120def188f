// Package search orchestrates a full sweep of an id space: it splits the
// space into fixed-size batches, screens and decides every machine in each
// batch on a pool of workers, and folds the per-batch summaries into one.
//
// Batch k always covers ids [k*BatchSize, (k+1)*BatchSize), clipped at the
// end of the space, so a batch result depends only on its index and the
// options — batches can be run in any order, concurrently, or repeated,
// and the merged outcome is the same. That is what makes a sweep resumable
// and its bookkeeping reproducible.
package search
