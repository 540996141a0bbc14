package compute

import (
	"runtime"
	"sync"

	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/nblist"
)

// Executor runs a kernel over a neighbor list, in parallel when the list
// is large enough to pay for it. Workers get disjoint record ranges and
// private accumulators; the buffers are merged after all workers finish,
// so the kernels' exclusive-write contract holds.
type Executor struct {
	workers int
}

// NewExecutor returns an executor with the given worker count; zero or
// negative selects NumCPU.
func NewExecutor(workers int) *Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Executor{workers: workers}
}

// serialThreshold is the record count below which forking workers costs
// more than the loop itself.
const serialThreshold = 64

// Run evaluates f over the whole list, accumulating into out.
func (e *Executor) Run(f kernel.Func, list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *kernel.Out) {
	n := list.Len()
	if e.workers == 1 || n < serialThreshold {
		f(list, shift, pos, p, out)
		return
	}

	workers := e.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	locals := make([]*kernel.Out, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		locals[w] = kernel.NewOut(len(out.F)/3, len(out.Vc), out.VnbB != nil)

		wg.Add(1)
		go func(sub *nblist.List, local *kernel.Out) {
			defer wg.Done()
			f(sub, shift, pos, p, local)
		}(list.Slice(start, end), locals[w])
	}
	wg.Wait()

	for _, local := range locals {
		if local != nil {
			out.Merge(local)
		}
	}
}
