package mailscout

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations return static markup only; JavaScript is not executed.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Any failure, including a non-success status, is returned as an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
