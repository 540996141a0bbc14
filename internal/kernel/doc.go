// Package kernel computes pairwise nonbonded forces and energies over a
// precomputed neighbor list: the innermost routine of a molecular dynamics
// step.
//
// The specialization matrix is the product of VdW model {none, 12-6,
// tabulated}, Coulomb model {none, plain, reaction field, tabulated} and
// free-energy perturbation {off, on}. Each combination is a distinct
// generic instantiation of one of two drivers; [Lookup] selects among them
// once per call, so the pair loop itself carries no feature branches.
//
// Kernels never allocate, never validate and never return errors: array
// sizing, index validity and non-zero pair distances are caller contracts
// (see forcefield.Params.Validate). All arrays are single precision;
// positions and forces pack xyz triplets, tables pack quads per sample.
//
// Concurrency: kernels perform unsynchronized additive writes to the
// caller's accumulators. Parallel invocation requires private per-worker
// accumulators merged afterwards (see the compute package), never
// overlapping buffers.
package kernel
