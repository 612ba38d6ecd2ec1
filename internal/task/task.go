package task

import "github.com/erizocosmico/bitsort"

// Handlers returns the task handlers of the sorting network, keyed by the
// kind schedulers dispatch on.
func Handlers() map[bitsort.Kind]bitsort.Handler {
	return map[bitsort.Kind]bitsort.Handler{
		bitsort.Compare: Compare,
		bitsort.Merge:   Merge,
	}
}
