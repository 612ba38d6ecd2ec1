package farm

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const clientConnectTimeout = 10 * time.Second

// ErrNoWorkersAvailable is returned when there are no more available workers
// to take a comparison.
var ErrNoWorkersAvailable = errors.New("no workers available")

type workerSet struct {
	mut     sync.RWMutex
	workers map[string]*worker
}

func newWorkerSet() *workerSet {
	return &workerSet{workers: make(map[string]*worker)}
}

func (p *workerSet) all() []*worker {
	p.mut.RLock()
	defer p.mut.RUnlock()

	var result = make([]*worker, 0, len(p.workers))
	for _, w := range p.workers {
		result = append(result, w)
	}

	sort.Slice(result, func(i, j int) bool {
		return strings.Compare(result[i].addr, result[j].addr) <= 0
	})

	return result
}

func (p *workerSet) add(w *worker) {
	p.mut.Lock()
	p.workers[w.addr] = w
	p.mut.Unlock()
}

func (p *workerSet) exists(addr string) bool {
	p.mut.RLock()
	defer p.mut.RUnlock()
	_, ok := p.workers[addr]
	return ok
}

func (p *workerSet) addresses() []string {
	p.mut.RLock()
	defer p.mut.RUnlock()

	var addrs = make([]string, 0, len(p.workers))
	for w := range p.workers {
		addrs = append(addrs, w)
	}

	sort.Strings(addrs)
	return addrs
}

// pick returns the available worker with the fewest running comparisons, so
// fan-out rounds spread evenly over the farm.
func (p *workerSet) pick() (*worker, error) {
	workers := p.all()
	var loads = make([]uint32, len(workers))
	for i, w := range workers {
		loads[i] = w.load()
	}

	sort.Slice(workers, func(i, j int) bool {
		return loads[i] < loads[j]
	})

	for _, w := range workers {
		if w.isAvailable() {
			return w, nil
		}
	}

	return nil, ErrNoWorkersAvailable
}

type workerState byte

const (
	workerOk workerState = iota
	workerFailing
)

type worker struct {
	cli  *Client
	opts *ClientOptions
	addr string

	mut       sync.RWMutex
	state     workerState
	running   uint32
	processed uint32
	failed    uint32
}

func newWorker(addr string, opts *ClientOptions) *worker {
	return &worker{
		opts:  opts,
		addr:  addr,
		state: workerOk,
	}
}

func (w *worker) load() uint32 {
	w.mut.RLock()
	defer w.mut.RUnlock()
	return w.running
}

func (w *worker) isAvailable() bool {
	w.mut.RLock()
	defer w.mut.RUnlock()
	return w.state == workerOk
}

func (w *worker) taskStarted() {
	w.mut.Lock()
	defer w.mut.Unlock()
	w.running++
}

func (w *worker) taskProcessed() {
	w.mut.Lock()
	defer w.mut.Unlock()
	if w.running > 0 {
		w.running--
	}
	w.processed++
}

func (w *worker) taskFailed() {
	w.mut.Lock()
	defer w.mut.Unlock()
	if w.running > 0 {
		w.running--
	}
	w.failed++
}

// markFailing takes the worker out of the rotation. It is used when the
// worker cannot be reached at all, not when a single comparison fails.
func (w *worker) markFailing() {
	w.mut.Lock()
	defer w.mut.Unlock()
	w.state = workerFailing
}

func (w *worker) checkAvailability(timeout time.Duration) error {
	return Retry(timeout, func() error {
		cli, err := NewClient(w.addr, w.opts)
		if err != nil {
			return err
		}

		defer cli.Close()

		return cli.HealthCheck()
	})
}

func (w *worker) client() (*Client, error) {
	w.mut.Lock()
	defer w.mut.Unlock()

	if w.cli == nil {
		err := Retry(clientConnectTimeout, func() error {
			var err error
			w.cli, err = NewClient(w.addr, w.opts)
			if err != nil {
				return err
			}

			return w.cli.HealthCheck()
		})
		if err != nil {
			return nil, err
		}
	}

	return w.cli, nil
}

func (w *worker) close() {
	w.mut.Lock()
	defer w.mut.Unlock()

	if w.cli != nil {
		if err := w.cli.Close(); err != nil {
			logrus.Errorf("unable to close client for worker at %s", w.addr)
		}

		w.cli = nil
	}
}
