package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.SheetService = (*SheetService)(nil)

// SheetService is a mock implementation of mailscout.SheetService.
type SheetService struct {
	ColumnsFn func(ctx context.Context, sheetURL string) ([]string, error)
	URLsFn    func(ctx context.Context, sheetURL, column string) ([]string, error)
}

func (s *SheetService) Columns(ctx context.Context, sheetURL string) ([]string, error) {
	return s.ColumnsFn(ctx, sheetURL)
}

func (s *SheetService) URLs(ctx context.Context, sheetURL, column string) ([]string, error) {
	return s.URLsFn(ctx, sheetURL, column)
}
