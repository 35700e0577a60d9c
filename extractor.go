package mailscout

import "context"

// Extractor harvests contact emails for a single website.
type Extractor interface {
	// Extract fetches baseURL and its likely contact pages and returns the
	// validated, deduplicated addresses found there. Addresses on the site's
	// own domain come first; each group is sorted.
	//
	// Page failures are absorbed and contribute nothing. Returns EINVALID
	// if baseURL is not an absolute http(s) URL.
	Extract(ctx context.Context, baseURL string) ([]string, error)
}
