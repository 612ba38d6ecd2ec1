package bitsort

import (
	"context"
	"errors"
)

// Kind identifies the type of a task submitted to a scheduler.
type Kind uint16

const (
	// Invalid task kind.
	Invalid Kind = iota
	// Compare orders a pair of values. It is the only leaf task of the
	// sorting network and receives its pair as raw argument bytes.
	Compare
	// Merge combines two sorted runs of equal length into one sorted run
	// of double the length. It receives its runs as input futures.
	Merge
)

var (
	// ErrInvalidInput is returned when the caller provides data the network
	// cannot sort: an empty input list, a non-numeric value or comparator
	// arguments of the wrong size.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariant is returned when the sorting network produced results of
	// an unexpected shape. It indicates a defect in the network construction
	// and is not recoverable.
	ErrInvariant = errors.New("sorting network invariant violated")
)

// Future is a handle to the result of a submitted task. It is resolved
// exactly once with the encoded task output and may be handed to other tasks
// as an input dependency before it resolves.
type Future interface {
	// Await blocks until the task result is available and returns its
	// encoded payload, or the error the task failed with.
	Await(ctx context.Context) ([]byte, error)
}

// Scheduler executes tasks of the sorting network. Implementations decide
// when and where a submitted task runs; submission must never block.
type Scheduler interface {
	// Submit enqueues a task of the given kind and returns a future holding
	// its eventual result. Args carries raw argument bytes for leaf tasks,
	// deps the input futures of dependent tasks.
	Submit(ctx context.Context, kind Kind, args []byte, deps ...Future) (Future, error)
}

// Handler executes a single task. Handlers receive the scheduler they were
// submitted to so they can issue nested tasks of their own, and must not
// retain state across invocations.
type Handler func(ctx context.Context, s Scheduler, args []byte, deps []Future) ([]byte, error)
