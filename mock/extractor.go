package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mailscout.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (e *Extractor) Extract(ctx context.Context, baseURL string) ([]string, error) {
	return e.ExtractFn(ctx, baseURL)
}
