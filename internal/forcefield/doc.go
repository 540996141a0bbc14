// Package forcefield holds the per-step interaction parameters: charges,
// type-pair coefficient tables, tabulated potentials and the state-B set
// for free-energy perturbation. Validation happens here, once, so the
// kernels can stay branch-free.
package forcefield
