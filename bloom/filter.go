// Package bloom tracks already-scraped URLs so batch runs skip duplicates.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenFilter remembers which URLs a batch has already processed.
// It is probabilistic: a false positive skips a URL that was never scraped,
// a false negative cannot happen. Not safe for concurrent use.
type SeenFilter struct {
	f *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the URL and reports whether it was already present.
func (f *SeenFilter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *SeenFilter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
