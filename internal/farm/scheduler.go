package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sched"
	"github.com/erizocosmico/bitsort/internal/task"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries   = 4
	attachWorkerTimeout = 10 * time.Second
)

// Scheduler runs the sorting network over a farm of remote workers.
// Comparisons are shipped to the least loaded worker; merge tasks run
// locally on dedicated goroutines, since they submit nested comparisons of
// their own.
type Scheduler struct {
	workers    *workerSet
	maxRetries int
}

// SchedulerOptions provides configuration options for the farm scheduler.
type SchedulerOptions struct {
	// WorkerOptions configures the clients used to reach the workers.
	WorkerOptions *ClientOptions
	// MaxRetries is the maximum number of times a comparison is reassigned
	// to another worker before its future fails.
	MaxRetries int
}

// NewScheduler creates a scheduler attached to the workers at the given
// addresses. Every worker must be reachable at attach time.
func NewScheduler(addrs []string, opts *SchedulerOptions) (*Scheduler, error) {
	if len(addrs) == 0 {
		return nil, ErrNoWorkersAvailable
	}

	var maxRetries = defaultMaxRetries
	var workerOpts *ClientOptions
	if opts != nil {
		if opts.MaxRetries > 0 {
			maxRetries = opts.MaxRetries
		}

		workerOpts = opts.WorkerOptions
	}

	set := newWorkerSet()
	for _, addr := range addrs {
		if set.exists(addr) {
			return nil, fmt.Errorf("worker with address %q already attached", addr)
		}

		w := newWorker(addr, workerOpts)
		if err := w.checkAvailability(attachWorkerTimeout); err != nil {
			return nil, fmt.Errorf("unable to connect to worker at %q: %s", addr, err)
		}

		set.add(w)
		logrus.Infof("worker %s attached", w.addr)
	}

	return &Scheduler{
		workers:    set,
		maxRetries: maxRetries,
	}, nil
}

// Submit schedules a task and returns the future holding its result. It
// never blocks the caller.
func (s *Scheduler) Submit(ctx context.Context, kind bitsort.Kind, args []byte, deps ...bitsort.Future) (bitsort.Future, error) {
	promise := sched.NewPromise()

	switch kind {
	case bitsort.Compare:
		go promise.Resolve(s.exec(ctx, args))
	case bitsort.Merge:
		go promise.Resolve(task.Merge(ctx, s, args, deps))
	default:
		return nil, fmt.Errorf("farm: no handler for task kind %d", kind)
	}

	return promise, nil
}

// Close releases the clients of every attached worker.
func (s *Scheduler) Close() error {
	for _, w := range s.workers.all() {
		w.close()
	}

	return nil
}

// Addresses returns the addresses of the attached workers.
func (s *Scheduler) Addresses() []string {
	return s.workers.addresses()
}

func (s *Scheduler) exec(ctx context.Context, args []byte) ([]byte, error) {
	id := uuid.NewV4()
	log := logrus.WithField("task", id)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		w, err := s.workers.pick()
		if err != nil {
			return nil, err
		}

		w.taskStarted()

		cli, err := w.client()
		if err != nil {
			w.taskFailed()
			w.markFailing()
			lastErr = err
			log.WithField("worker", w.addr).Debugf("can't reach worker: %s", err)
			continue
		}

		result, err := cli.Exec(id, args)
		if err != nil {
			w.taskFailed()
			lastErr = err
			log.WithField("worker", w.addr).Debugf("comparison failed: %s", err)
			continue
		}

		w.taskProcessed()
		return result, nil
	}

	return nil, fmt.Errorf("comparison failed after %d retries: %s", s.maxRetries, lastErr)
}
