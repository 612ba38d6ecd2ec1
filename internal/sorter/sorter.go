package sorter

import (
	"context"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sequence"
	"github.com/sirupsen/logrus"
)

// Sort runs a bitonic sorting network over nums on the given scheduler and
// returns the values in non-decreasing order.
//
// The network is built in rounds: round zero compares each adjacent input
// pair, and every following round merges pairs of the previous round's runs,
// doubling the run length, until a single future holds the whole sequence.
// Tasks within a round carry no ordering among themselves; the scheduler may
// run them in any order or in parallel.
func Sort(ctx context.Context, s bitsort.Scheduler, nums []int32) ([]int32, error) {
	padded, err := sequence.Pad(nums)
	if err != nil {
		return nil, err
	}

	total := len(padded)
	logrus.WithFields(logrus.Fields{
		"inputs": len(nums),
		"padded": total,
	}).Debug("running bitonic sorting network")

	futures := make([]bitsort.Future, 0, total/2)
	for lo := 0; lo < total; lo += 2 {
		f, err := s.Submit(ctx, bitsort.Compare, sequence.EncodePair(padded[lo], padded[lo+1]))
		if err != nil {
			return nil, err
		}

		futures = append(futures, f)
	}

	for len(futures) > 1 {
		next := make([]bitsort.Future, 0, len(futures)/2)
		for i := 0; i < len(futures); i += 2 {
			f, err := s.Submit(ctx, bitsort.Merge, nil, futures[i], futures[i+1])
			if err != nil {
				return nil, err
			}

			next = append(next, f)
		}

		futures = next
	}

	data, err := futures[0].Await(ctx)
	if err != nil {
		return nil, err
	}

	sorted, err := sequence.Decode(data)
	if err != nil {
		return nil, err
	}

	if len(sorted) != total {
		logrus.WithFields(logrus.Fields{
			"expected": total,
			"got":      len(sorted),
		}).Error("final run has the wrong length")
		return nil, bitsort.ErrInvariant
	}

	return sorted[:len(nums)], nil
}
