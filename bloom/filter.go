// Package bloom provides URL deduplication for job imports.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used by NewURLFilter.
const DefaultFalsePositiveRate = 0.0001

// Filter remembers URLs it has seen. Lookups may report false positives at
// the configured rate; they never report false negatives.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected URLs with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewURLFilter creates a Filter for n URLs at DefaultFalsePositiveRate.
func NewURLFilter(n int) *Filter {
	if n < 0 {
		n = 0
	}
	return NewFilter(uint(n), DefaultFalsePositiveRate)
}

// Seen reports whether rawURL was already recorded and records it.
// URLs differing only in case or a trailing slash are treated as equal.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestAndAddString(normalize(rawURL))
}

// Test reports whether rawURL might have been recorded.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(normalize(rawURL))
}

// EstimatedCount returns the approximate number of distinct URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func normalize(rawURL string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(rawURL)), "/")
}

// Set is an exact URL set fronted by a Filter. The filter answers most
// first sightings without touching the map; a positive is confirmed
// against the map, so false positives never drop a URL.
type Set struct {
	filter *Filter
	seen   map[string]struct{}
}

// NewSet creates a Set backed by f.
func NewSet(f *Filter) *Set {
	return &Set{filter: f, seen: make(map[string]struct{})}
}

// NewURLSet creates a Set sized for n URLs at DefaultFalsePositiveRate.
func NewURLSet(n int) *Set {
	return NewSet(NewURLFilter(n))
}

// Seen reports whether rawURL was already recorded and records it.
// URLs differing only in case or a trailing slash are treated as equal.
func (s *Set) Seen(rawURL string) bool {
	key := normalize(rawURL)
	if !s.filter.f.TestAndAddString(key) {
		s.seen[key] = struct{}{}
		return false
	}
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	return false
}

// Len returns the number of distinct URLs recorded.
func (s *Set) Len() int {
	return len(s.seen)
}
