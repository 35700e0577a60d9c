package mailscout

import (
	"sort"
	"strings"
)

// noisyChars are characters that make a local part look like it picked up
// stray text, such as a phone number glued to "info". The dot is excluded
// because it is common in genuine local parts.
const noisyChars = "0123456789!@#$%^&*()_+-=[]{};':\"\\|,<>/?"

// Dedupe collapses addresses that differ only by incidental noise, such as
// "892-0300info@acme.com" next to "info@acme.com" or "project.info@acme.com"
// next to "info@acme.com". Only addresses sharing a domain are compared.
//
// Rules are applied to every ordered pair of distinct addresses and removals
// are collected before filtering once. With three or more variants of one
// address the outcome depends on the pairwise rules alone, not on any
// transitive grouping. The result is sorted.
func Dedupe(emails []string) []string {
	distinct := NewEmailSet(emails...).Slice()

	remove := make(map[string]bool)
	for i, a := range distinct {
		for j, b := range distinct {
			if i == j {
				continue
			}
			if drop, ok := compareVariants(a, b); ok {
				remove[drop] = true
			}
		}
	}

	out := make([]string, 0, len(distinct))
	for _, e := range distinct {
		if !remove[e] {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}

// compareVariants returns the address to drop when a and b look like noisy
// variants of the same address. The bool result is false if neither should
// be dropped.
func compareVariants(a, b string) (string, bool) {
	localA, domainA, okA := SplitEmail(a)
	localB, domainB, okB := SplitEmail(b)
	if !okA || !okB || domainA != domainB {
		return "", false
	}

	switch {
	case strings.Contains(a, b):
		return a, true
	case strings.Contains(b, a):
		return b, true
	case hasSeparatedSuffix(localA, localB):
		return a, true
	case hasSeparatedSuffix(localB, localA):
		return b, true
	case isNoisy(localA) && !isNoisy(localB):
		return a, true
	case isNoisy(localB) && !isNoisy(localA):
		return b, true
	}
	return "", false
}

// hasSeparatedSuffix reports whether local is suffix preceded by a
// separator, as in "project.info" for suffix "info".
func hasSeparatedSuffix(local, suffix string) bool {
	if len(local) <= len(suffix) || !strings.HasSuffix(local, suffix) {
		return false
	}
	switch local[len(local)-len(suffix)-1] {
	case '.', '-', '_':
		return true
	}
	return false
}

func isNoisy(local string) bool {
	return strings.ContainsAny(local, noisyChars)
}
