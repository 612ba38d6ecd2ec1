package sched

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/erizocosmico/bitsort"
	"github.com/stretchr/testify/require"
)

func TestPromise(t *testing.T) {
	require := require.New(t)

	p := NewPromise()
	go p.Resolve([]byte("result"), nil)

	data, err := p.Await(context.Background())
	require.NoError(err)
	require.Equal([]byte("result"), data)

	// Resolved promises can be awaited again.
	data, err = p.Await(context.Background())
	require.NoError(err)
	require.Equal([]byte("result"), data)
}

func TestPromiseResolveTwice(t *testing.T) {
	p := NewPromise()
	p.Resolve(nil, nil)
	require.Panics(t, func() {
		p.Resolve(nil, nil)
	})
}

func TestPromiseAwaitCancelled(t *testing.T) {
	require := require.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewPromise().Await(ctx)
	require.Equal(context.DeadlineExceeded, err)
}

func TestPoolSubmit(t *testing.T) {
	require := require.New(t)

	echo := func(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
		return args, nil
	}

	pool := NewPool(2, map[bitsort.Kind]bitsort.Handler{bitsort.Compare: echo})

	var futures []bitsort.Future
	for i := byte(0); i < 16; i++ {
		f, err := pool.Submit(context.Background(), bitsort.Compare, []byte{i})
		require.NoError(err)
		futures = append(futures, f)
	}

	for i, f := range futures {
		data, err := f.Await(context.Background())
		require.NoError(err)
		require.Equal([]byte{byte(i)}, data)
	}
}

func TestPoolSubmitUnknownKind(t *testing.T) {
	pool := NewPool(1, nil)
	_, err := pool.Submit(context.Background(), bitsort.Merge, nil)
	require.Error(t, err)
}

func TestPoolTaskError(t *testing.T) {
	require := require.New(t)

	fail := errors.New("task failed")
	pool := NewPool(1, map[bitsort.Kind]bitsort.Handler{
		bitsort.Compare: func(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
			return nil, fail
		},
	})

	f, err := pool.Submit(context.Background(), bitsort.Compare, nil)
	require.NoError(err)

	_, err = f.Await(context.Background())
	require.Equal(fail, err)
}

func TestPoolNestedSubmit(t *testing.T) {
	require := require.New(t)

	// A dependent task fanning out more leaf tasks than the pool has slots
	// must still finish: dependent tasks do not occupy slots.
	leaf := func(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
		return args, nil
	}

	fanout := func(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			f, err := s.Submit(ctx, bitsort.Compare, []byte{byte(i)})
			if err != nil {
				return nil, err
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.Await(ctx)
			}()
		}

		wg.Wait()
		return []byte("done"), nil
	}

	pool := NewPool(1, map[bitsort.Kind]bitsort.Handler{
		bitsort.Compare: leaf,
		bitsort.Merge:   fanout,
	})

	dep, err := pool.Submit(context.Background(), bitsort.Compare, []byte{0})
	require.NoError(err)

	f, err := pool.Submit(context.Background(), bitsort.Merge, nil, dep)
	require.NoError(err)

	data, err := f.Await(context.Background())
	require.NoError(err)
	require.Equal([]byte("done"), data)
}
