package sorter

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sched"
	"github.com/erizocosmico/bitsort/internal/task"
	"github.com/stretchr/testify/require"
)

func newPool() *sched.Pool {
	return sched.NewPool(8, task.Handlers())
}

func TestSort(t *testing.T) {
	testCases := []struct {
		name     string
		nums     []int32
		expected []int32
	}{
		{"single", []int32{5}, []int32{5}},
		{"pair", []int32{2, 1}, []int32{1, 2}},
		{"uneven", []int32{1, 2, 3}, []int32{1, 2, 3}},
		{"eight", []int32{3, 1, 4, 1, 5, 9, 2, 6}, []int32{1, 1, 2, 3, 4, 5, 6, 9}},
		{"duplicates", []int32{7, 7, 7, 7}, []int32{7, 7, 7, 7}},
		{"negatives", []int32{0, -5, 3, -1, 2}, []int32{-5, -1, 0, 2, 3}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			sorted, err := Sort(context.Background(), newPool(), tt.nums)
			require.NoError(err)
			require.Equal(tt.expected, sorted)
		})
	}
}

func TestSortEmpty(t *testing.T) {
	_, err := Sort(context.Background(), newPool(), nil)
	require.Equal(t, bitsort.ErrInvalidInput, err)
}

func TestSortRandom(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		size := rng.Intn(64) + 1
		nums := make([]int32, size)
		for j := range nums {
			nums[j] = rng.Int31n(2000) - 1000
		}

		sorted, err := Sort(context.Background(), newPool(), nums)
		require.NoError(err)

		expected := append([]int32(nil), nums...)
		sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
		require.Equal(expected, sorted)
	}
}

func TestSortIdempotent(t *testing.T) {
	require := require.New(t)

	nums := []int32{9, 3, 7, 3, 1, 8, 0}
	once, err := Sort(context.Background(), newPool(), nums)
	require.NoError(err)

	twice, err := Sort(context.Background(), newPool(), once)
	require.NoError(err)
	require.Equal(once, twice)
}

func TestSortBadScheduler(t *testing.T) {
	require := require.New(t)

	// A scheduler resolving every task to garbage must surface an invariant
	// violation, never a wrong order.
	_, err := Sort(context.Background(), garbageScheduler{}, []int32{2, 1})
	require.Error(err)
}

type garbageScheduler struct{}

func (garbageScheduler) Submit(ctx context.Context, kind bitsort.Kind, args []byte, deps ...bitsort.Future) (bitsort.Future, error) {
	p := sched.NewPromise()
	p.Resolve([]byte{1}, nil)
	return p, nil
}
