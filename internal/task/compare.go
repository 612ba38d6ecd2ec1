package task

import (
	"context"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/sequence"
)

// Compare is the leaf task of the sorting network. It receives a raw pair of
// values and returns them as a two-element sequence, smallest first.
func Compare(ctx context.Context, s bitsort.Scheduler, args []byte, deps []bitsort.Future) ([]byte, error) {
	if len(deps) != 0 {
		return nil, bitsort.ErrInvalidInput
	}

	a, b, err := sequence.DecodePair(args)
	if err != nil {
		return nil, err
	}

	if b < a {
		a, b = b, a
	}

	return sequence.Sequence{a, b}.Encode()
}
