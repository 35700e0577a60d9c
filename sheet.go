package mailscout

import "context"

// SheetService reads URL lists from published spreadsheets.
type SheetService interface {
	// Columns returns the header row of the sheet.
	// Returns EINVALID if sheetURL is not a recognized spreadsheet URL.
	Columns(ctx context.Context, sheetURL string) ([]string, error)

	// URLs returns the distinct URL-like cells of the named column, in row
	// order. Cells without a scheme are given https://.
	// Returns ENOTFOUND if the column does not exist.
	URLs(ctx context.Context, sheetURL, column string) ([]string, error)
}
