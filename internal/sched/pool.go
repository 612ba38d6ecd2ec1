package sched

import (
	"context"
	"fmt"
	"runtime"

	"github.com/erizocosmico/bitsort"
)

// Pool is an in-process scheduler backed by goroutines. Leaf tasks share a
// bounded set of execution slots; tasks with input dependencies get a
// dedicated goroutine each, so a task that submits and awaits nested tasks
// can never starve the slots its children need.
type Pool struct {
	handlers map[bitsort.Kind]bitsort.Handler
	slots    chan struct{}
}

// NewPool creates a pool dispatching to the given handlers. Workers bounds
// the number of leaf tasks running at once; if it is not positive, the
// number of CPUs is used.
func NewPool(workers int, handlers map[bitsort.Kind]bitsort.Handler) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pool{
		handlers: handlers,
		slots:    make(chan struct{}, workers),
	}
}

// Submit schedules a task and returns the future holding its result. It
// never blocks the caller.
func (p *Pool) Submit(ctx context.Context, kind bitsort.Kind, args []byte, deps ...bitsort.Future) (bitsort.Future, error) {
	h, ok := p.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("sched: no handler for task kind %d", kind)
	}

	promise := NewPromise()
	go func() {
		if len(deps) == 0 {
			select {
			case p.slots <- struct{}{}:
				defer func() { <-p.slots }()
			case <-ctx.Done():
				promise.Resolve(nil, ctx.Err())
				return
			}
		}

		promise.Resolve(h(ctx, p, args, deps))
	}()

	return promise, nil
}
