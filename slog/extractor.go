package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Ensure LoggingExtractor implements mailscout.Extractor.
var _ mailscout.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   mailscout.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next mailscout.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, baseURL string) (emails []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", baseURL,
			"count", len(emails),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, baseURL)
}
