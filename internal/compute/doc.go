// Package compute schedules kernel invocations across CPU workers.
//
// The kernels themselves are pure array computations; all concurrency
// policy lives here. Partitioning is by i-record, each worker accumulates
// into a private buffer set, and buffers are merged once all workers have
// finished (the private-accumulator discipline the kernel package
// documents).
package compute
