package http

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/bloom"
)

// DefaultSheetExportBase is the origin used to build CSV export URLs.
const DefaultSheetExportBase = "https://docs.google.com"

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Ensure SheetService implements mailscout.SheetService at compile time.
var _ mailscout.SheetService = (*SheetService)(nil)

// SheetService reads URL columns from Google Sheets through their public
// CSV export.
type SheetService struct {
	client     *http.Client
	exportBase string
}

// SheetOption configures a SheetService.
type SheetOption func(*SheetService)

// WithExportBase overrides the origin CSV exports are downloaded from.
func WithExportBase(base string) SheetOption {
	return func(s *SheetService) {
		s.exportBase = strings.TrimRight(base, "/")
	}
}

// WithSheetTimeout sets the timeout for export downloads.
func WithSheetTimeout(d time.Duration) SheetOption {
	return func(s *SheetService) {
		s.client.Timeout = d
	}
}

// NewSheetService creates a new SheetService.
func NewSheetService(opts ...SheetOption) *SheetService {
	s := &SheetService{
		client:     &http.Client{Timeout: DefaultFetchTimeout},
		exportBase: DefaultSheetExportBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SheetID returns the spreadsheet identifier embedded in sheetURL.
func SheetID(sheetURL string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(sheetURL)
	if m == nil {
		return "", mailscout.Errorf(mailscout.EINVALID, "invalid Google Sheet URL: %q", sheetURL)
	}
	return m[1], nil
}

// Columns returns the trimmed header row of the sheet.
func (s *SheetService) Columns(ctx context.Context, sheetURL string) ([]string, error) {
	records, err := s.records(ctx, sheetURL)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []string{}, nil
	}
	return headers(records[0]), nil
}

// URLs returns the distinct URL-like cells of column in row order.
func (s *SheetService) URLs(ctx context.Context, sheetURL, column string) ([]string, error) {
	records, err := s.records(ctx, sheetURL)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "column %q not found", column)
	}

	idx := -1
	for i, h := range headers(records[0]) {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "column %q not found", column)
	}

	rows := records[1:]
	seen := bloom.NewURLSet(len(rows))
	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		u, ok := NormalizeSheetURL(row[idx])
		if !ok || seen.Seen(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// NormalizeSheetURL reports whether cell looks like a URL and returns it
// with an https scheme when it has none.
func NormalizeSheetURL(cell string) (string, bool) {
	cell = strings.Trim(strings.TrimSpace(cell), `"`)
	lower := strings.ToLower(cell)
	if !strings.Contains(lower, "http") && !strings.Contains(lower, "www.") {
		return "", false
	}
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		cell = "https://" + cell
	}
	return cell, true
}

func (s *SheetService) records(ctx context.Context, sheetURL string) ([][]string, error) {
	id, err := SheetID(sheetURL)
	if err != nil {
		return nil, err
	}
	exportURL := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", s.exportBase, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sheet request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download sheet: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "sheet %s not found", id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("download sheet: HTTP %d", resp.StatusCode)
	}

	r := csv.NewReader(io.LimitReader(resp.Body, MaxBodySize))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sheet: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func headers(row []string) []string {
	out := make([]string, len(row))
	for i, h := range row {
		out[i] = strings.Trim(strings.TrimSpace(h), `"`)
	}
	return out
}
