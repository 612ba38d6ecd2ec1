package sequence

import (
	"bytes"
	"fmt"
	"math"

	"github.com/erizocosmico/bitsort"
	"github.com/erizocosmico/bitsort/internal/bin"
)

// Sentinel is the padding value appended to inputs to round their length up
// to a power of two. It is the maximum representable value, so it always
// sorts to the trailing slots and never appears in final output.
const Sentinel int32 = math.MaxInt32

// Sequence is an ordered list of values moving through the sorting network.
// It crosses task boundaries as opaque, length-prefixed bytes.
type Sequence []int32

// Encode serializes the sequence as its size followed by its values.
func (s Sequence) Encode() ([]byte, error) {
	var w = bytes.NewBuffer(nil)
	if err := bin.WriteUint32(w, uint32(len(s))); err != nil {
		return nil, err
	}

	for _, v := range s {
		if err := bin.WriteInt32(w, v); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

// Decode reconstructs a sequence from its encoded form.
func Decode(data []byte) (Sequence, error) {
	r := bytes.NewReader(data)
	size, err := bin.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("sequence: can't read size: %s", err)
	}

	s := make(Sequence, int(size))
	for i := range s {
		s[i], err = bin.ReadInt32(r)
		if err != nil {
			return nil, fmt.Errorf("sequence: can't read value %d: %s", i, err)
		}
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("sequence: %d trailing bytes after %d values", r.Len(), size)
	}

	return s, nil
}

// EncodePair serializes the raw argument pair of a comparison, with no size
// prefix.
func EncodePair(a, b int32) []byte {
	var w = bytes.NewBuffer(nil)
	_ = bin.WriteInt32(w, a)
	_ = bin.WriteInt32(w, b)
	return w.Bytes()
}

// DecodePair reads back a raw comparison argument pair.
func DecodePair(data []byte) (a, b int32, err error) {
	if len(data) != 8 {
		return 0, 0, bitsort.ErrInvalidInput
	}

	r := bytes.NewReader(data)
	if a, err = bin.ReadInt32(r); err != nil {
		return 0, 0, err
	}

	b, err = bin.ReadInt32(r)
	return a, b, err
}

// Pad extends nums to the next power of two, filling the extra slots with
// the sentinel value. The input is copied, never mutated.
func Pad(nums []int32) (Sequence, error) {
	if len(nums) == 0 {
		return nil, bitsort.ErrInvalidInput
	}

	total := NextPow2(len(nums))
	s := make(Sequence, 0, total)
	s = append(s, nums...)
	for i := len(nums); i < total; i++ {
		s = append(s, Sentinel)
	}

	return s, nil
}

// NextPow2 returns the smallest power of two greater than or equal to n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
