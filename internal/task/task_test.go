package task

import (
	"context"
	"sort"
	"testing"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sched"
	"github.com/erizocosmico/bitsort/internal/sequence"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     int32
		expected sequence.Sequence
	}{
		{"ordered", 1, 2, sequence.Sequence{1, 2}},
		{"reversed", 9, -4, sequence.Sequence{-4, 9}},
		{"equal", 7, 7, sequence.Sequence{7, 7}},
		{"sentinel", sequence.Sentinel, 3, sequence.Sequence{3, sequence.Sentinel}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			data, err := Compare(context.Background(), nil, sequence.EncodePair(tt.a, tt.b), nil)
			require.NoError(err)

			s, err := sequence.Decode(data)
			require.NoError(err)
			require.Equal(tt.expected, s)
		})
	}
}

func TestCompareInvalidArgs(t *testing.T) {
	require := require.New(t)

	_, err := Compare(context.Background(), nil, []byte{1, 2, 3}, nil)
	require.Equal(bitsort.ErrInvalidInput, err)

	_, err = Compare(context.Background(), nil, sequence.EncodePair(1, 2), []bitsort.Future{sched.NewPromise()})
	require.Equal(bitsort.ErrInvalidInput, err)
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name        string
		left, right sequence.Sequence
	}{
		{"pairs", sequence.Sequence{1, 3}, sequence.Sequence{2, 4}},
		{"disjoint", sequence.Sequence{1, 2, 3, 4}, sequence.Sequence{5, 6, 7, 8}},
		{"interleaved", sequence.Sequence{1, 4, 6, 9}, sequence.Sequence{2, 3, 7, 8}},
		{"duplicates", sequence.Sequence{7, 7}, sequence.Sequence{7, 7}},
		{"sentinels", sequence.Sequence{5, sequence.Sentinel}, sequence.Sequence{3, sequence.Sentinel}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			pool := sched.NewPool(4, Handlers())

			merged, err := runMerge(t, pool, tt.left, tt.right)
			require.NoError(err)
			require.Len(merged, len(tt.left)+len(tt.right))
			require.True(sort.SliceIsSorted(merged, func(i, j int) bool {
				return merged[i] < merged[j]
			}))

			var expected sequence.Sequence
			expected = append(expected, tt.left...)
			expected = append(expected, tt.right...)
			sort.Slice(expected, func(i, j int) bool { return expected[i] < expected[j] })
			require.Equal(expected, merged)
		})
	}
}

func TestMergeMismatchedRuns(t *testing.T) {
	pool := sched.NewPool(4, Handlers())
	_, err := runMerge(t, pool, sequence.Sequence{1, 2}, sequence.Sequence{3, 4, 5, 6})
	require.Equal(t, bitsort.ErrInvariant, err)
}

func TestMergeMissingRun(t *testing.T) {
	pool := sched.NewPool(4, Handlers())
	left := resolved(t, sequence.Sequence{1, 2})
	_, err := Merge(context.Background(), pool, nil, []bitsort.Future{left})
	require.Equal(t, bitsort.ErrInvariant, err)
}

func runMerge(t *testing.T, s bitsort.Scheduler, left, right sequence.Sequence) (sequence.Sequence, error) {
	t.Helper()

	data, err := Merge(context.Background(), s, nil, []bitsort.Future{
		resolved(t, left),
		resolved(t, right),
	})
	if err != nil {
		return nil, err
	}

	return sequence.Decode(data)
}

func resolved(t *testing.T, s sequence.Sequence) bitsort.Future {
	t.Helper()

	data, err := s.Encode()
	require.NoError(t, err)

	p := sched.NewPromise()
	p.Resolve(data, nil)
	return p
}
