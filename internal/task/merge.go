package task

import (
	"context"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sequence"
	"github.com/sirupsen/logrus"
)

// Merge combines the two sorted runs its input futures resolve to into one
// sorted run of double the length. It first folds the runs into a bitonic
// buffer by comparing them crosswise, then converges the buffer with
// half-clean rounds of halving stride. Every round submits all of its
// comparisons before awaiting any of them, so comparisons within a round run
// in parallel while rounds stay strictly ordered.
func Merge(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
	if len(deps) != 2 {
		logrus.WithField("deps", len(deps)).Error("merge task needs exactly two input runs")
		return nil, bitsort.ErrInvariant
	}

	left, err := awaitRun(ctx, deps[0])
	if err != nil {
		return nil, err
	}

	right, err := awaitRun(ctx, deps[1])
	if err != nil {
		return nil, err
	}

	if len(left) != len(right) {
		logrus.WithFields(logrus.Fields{
			"left":  len(left),
			"right": len(right),
		}).Error("merge task got runs of different lengths")
		return nil, bitsort.ErrInvariant
	}

	size := len(left)
	total := size * 2
	buf := make(sequence.Sequence, total)

	// Crosswork: compare the ascending left run against the reversed right
	// run. Minimums fill the buffer from the front, maximums from the back,
	// leaving a bitonic sequence.
	futures := make([]bitsort.Future, size)
	for i := 0; i < size; i++ {
		futures[i], err = s.Submit(ctx, bitsort.Compare, sequence.EncodePair(left[i], right[size-1-i]))
		if err != nil {
			return nil, err
		}
	}

	for i, f := range futures {
		lo, hi, err := awaitPair(ctx, f)
		if err != nil {
			return nil, err
		}

		buf[i] = lo
		buf[total-1-i] = hi
	}

	// Half-clean rounds: compare values half a window apart, halving the
	// window each round until the buffer is sorted.
	for gap := size; gap > 1; gap /= 2 {
		half := gap / 2
		futures = futures[:0]
		for lo := 0; lo < total; lo += gap {
			for i := 0; i < half; i++ {
				f, err := s.Submit(ctx, bitsort.Compare, sequence.EncodePair(buf[lo+i], buf[lo+i+half]))
				if err != nil {
					return nil, err
				}

				futures = append(futures, f)
			}
		}

		j := 0
		for lo := 0; lo < total; lo += gap {
			for i := 0; i < half; i++ {
				min, max, err := awaitPair(ctx, futures[j])
				if err != nil {
					return nil, err
				}

				buf[lo+i] = min
				buf[lo+i+half] = max
				j++
			}
		}
	}

	// Merges running in parallel log out of order. Diagnostic only.
	logrus.WithField("len", total).Debugf("merged run: %v", buf)

	return buf.Encode()
}

func awaitRun(ctx context.Context, f bitsort.Future) (sequence.Sequence, error) {
	data, err := f.Await(ctx)
	if err != nil {
		return nil, err
	}

	return sequence.Decode(data)
}

func awaitPair(ctx context.Context, f bitsort.Future) (min, max int32, err error) {
	s, err := awaitRun(ctx, f)
	if err != nil {
		return 0, 0, err
	}

	if len(s) != 2 {
		logrus.WithField("len", len(s)).Error("comparison resolved to something other than a pair")
		return 0, 0, bitsort.ErrInvariant
	}

	return s[0], s[1], nil
}
