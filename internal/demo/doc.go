// Package demo assembles runnable scenes (system + neighbor list + force
// field + dispatched kernel) from a configuration. The CLI and the live
// view both drive scenes; the kernels themselves never see this package.
package demo
