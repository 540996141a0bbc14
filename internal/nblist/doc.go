// Package nblist defines the neighbor-list and shift-vector types consumed
// by the nonbonded kernels.
//
// A [List] is a ragged mapping from i-particles to contiguous ranges of
// j-particles, each range tagged with a periodic shift code and an
// energy-group slot. The backing storage is flat so a full traversal walks
// memory linearly. Lists are built once per step (see [Builder]) and are
// read-only afterwards; [List.Slice] yields sub-lists for parallel workers
// without copying.
//
// Construction policy (cutoffs, cell lists, load balancing) is the caller's
// concern; this package only fixes the layout and iteration contract.
package nblist
