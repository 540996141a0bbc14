// Package box provides the caller-side collaborators the kernels assume:
// a periodic cell, a brute-force minimum-image neighbor-list builder and a
// lattice system generator. It exists so the CLI and the test suite can
// exercise the kernels end to end; none of it is on the hot path.
package box
