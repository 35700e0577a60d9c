package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mailscout"
)

// Ensure LoggingSheetService implements mailscout.SheetService.
var _ mailscout.SheetService = (*LoggingSheetService)(nil)

// LoggingSheetService wraps a SheetService with logging.
type LoggingSheetService struct {
	next   mailscout.SheetService
	logger *slog.Logger
}

// NewLoggingSheetService creates a new LoggingSheetService.
func NewLoggingSheetService(next mailscout.SheetService, logger *slog.Logger) *LoggingSheetService {
	return &LoggingSheetService{next: next, logger: logger}
}

// Columns delegates to the wrapped service and logs the operation.
func (s *LoggingSheetService) Columns(ctx context.Context, sheetURL string) (columns []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sheet columns",
			"url", sheetURL,
			"count", len(columns),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Columns(ctx, sheetURL)
}

// URLs delegates to the wrapped service and logs the operation.
func (s *LoggingSheetService) URLs(ctx context.Context, sheetURL, column string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sheet urls",
			"url", sheetURL,
			"column", column,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.URLs(ctx, sheetURL, column)
}
