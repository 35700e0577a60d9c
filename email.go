package mailscout

import (
	"regexp"
	"strings"
)

// EmailPattern matches email-like substrings anywhere in a string.
// It is the grammar shared by every scanning strategy.
var EmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var (
	emailExact     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	imageDimension = regexp.MustCompile(`\d+x\d+`)
)

// imageExtensions mark candidates lifted from src/href attributes of images,
// e.g. "logo@2x.png".
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico"}

// IgnoreDomains lists platform and placeholder domains whose addresses are
// noise rather than contact information. Matching is by substring.
var IgnoreDomains = []string{
	"wix.com",
	"domain.com",
	"example.com",
	"sentry.io",
	"wixpress.com",
	"squarespace.com",
	"wordpress.com",
	"shopify.com",
}

// ValidateEmail cleans a raw candidate and reports whether it is a plausible
// email address. The returned address is lower-cased and trimmed of leading
// and trailing junk.
func ValidateEmail(candidate string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(candidate))

	for _, ext := range imageExtensions {
		if strings.Contains(email, ext) {
			return "", false
		}
	}

	email = strings.TrimLeftFunc(email, func(r rune) bool { return !isAlnum(r) })
	email = strings.TrimRightFunc(email, func(r rune) bool { return !isAlnum(r) && r != '.' })

	if !emailExact.MatchString(email) {
		return "", false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || !strings.Contains(parts[1], ".") {
		return "", false
	}

	// A dimension token such as "120x80" glued to an "@" by a bad match.
	if imageDimension.MatchString(parts[1]) {
		return "", false
	}

	return email, true
}

// IsIgnored reports whether email belongs to one of the given noise domains.
// If domains is nil, IgnoreDomains is used.
func IsIgnored(email string, domains []string) bool {
	if domains == nil {
		domains = IgnoreDomains
	}
	for _, d := range domains {
		if strings.Contains(email, d) {
			return true
		}
	}
	return false
}

// SplitEmail splits an address into local part and domain.
// The bool result is false unless the address contains exactly one "@".
func SplitEmail(email string) (local, domain string, ok bool) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// EmailSet is an insertion-ordered set of email addresses.
// Addresses are case-folded on insertion so that case variants collapse.
// The zero value is ready to use.
type EmailSet struct {
	seen  map[string]struct{}
	items []string
}

// NewEmailSet returns a set containing emails.
func NewEmailSet(emails ...string) *EmailSet {
	s := &EmailSet{}
	s.Add(emails...)
	return s
}

// Add inserts emails and returns the number that were not already present.
func (s *EmailSet) Add(emails ...string) int {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	var added int
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" {
			continue
		}
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, key)
		added++
	}
	return added
}

// Contains reports whether the set holds email, ignoring case.
func (s *EmailSet) Contains(email string) bool {
	_, ok := s.seen[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Len returns the number of addresses in the set.
func (s *EmailSet) Len() int {
	return len(s.items)
}

// Slice returns the addresses in insertion order.
func (s *EmailSet) Slice() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
