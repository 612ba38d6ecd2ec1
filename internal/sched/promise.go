package sched

import (
	"context"
	"sync"
)

// Promise is a future resolved exactly once by the scheduler that created
// it. Once resolved it is immutable and may be awaited any number of times.
type Promise struct {
	once sync.Once
	done chan struct{}
	data []byte
	err  error
}

// NewPromise creates an unresolved promise.
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolve sets the promise result and wakes every awaiter. Resolving a
// promise twice is a defect in the scheduler and panics.
func (p *Promise) Resolve(data []byte, err error) {
	var first bool
	p.once.Do(func() {
		p.data, p.err = data, err
		close(p.done)
		first = true
	})

	if !first {
		panic("sched: promise resolved twice")
	}
}

// Await blocks until the promise is resolved or the context is cancelled.
func (p *Promise) Await(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.data, p.err
	}
}
