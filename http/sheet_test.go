package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/mailscout"
	mshttp "github.com/fwojciec/mailscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSheetURL = "https://docs.google.com/spreadsheets/d/abc-123_XY/edit#gid=0"

func newSheetServer(t *testing.T, body string) (*httptest.Server, *string) {
	t.Helper()
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.RequestURI()
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &path
}

func TestSheetID(t *testing.T) {
	t.Parallel()

	t.Run("extracts id from edit URL", func(t *testing.T) {
		t.Parallel()

		id, err := mshttp.SheetID(testSheetURL)

		require.NoError(t, err)
		assert.Equal(t, "abc-123_XY", id)
	})

	t.Run("rejects other URLs", func(t *testing.T) {
		t.Parallel()

		_, err := mshttp.SheetID("https://example.org/not-a-sheet")

		require.Error(t, err)
		assert.Equal(t, mailscout.EINVALID, mailscout.ErrorCode(err))
	})
}

func TestSheetService_Columns(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed header row", func(t *testing.T) {
		t.Parallel()

		server, path := newSheetServer(t, "Company, \"Website\" ,Notes\nAcme,acme.com,\n")
		svc := mshttp.NewSheetService(mshttp.WithExportBase(server.URL))

		cols, err := svc.Columns(context.Background(), testSheetURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"Company", "Website", "Notes"}, cols)
		assert.Equal(t, "/spreadsheets/d/abc-123_XY/export?format=csv", *path)
	})

	t.Run("returns EINVALID without network for bad URL", func(t *testing.T) {
		t.Parallel()

		svc := mshttp.NewSheetService(mshttp.WithExportBase("http://127.0.0.1:1"))

		_, err := svc.Columns(context.Background(), "https://example.org")

		assert.Equal(t, mailscout.EINVALID, mailscout.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing sheet", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()
		svc := mshttp.NewSheetService(mshttp.WithExportBase(server.URL))

		_, err := svc.Columns(context.Background(), testSheetURL)

		assert.Equal(t, mailscout.ENOTFOUND, mailscout.ErrorCode(err))
	})
}

func TestSheetService_URLs(t *testing.T) {
	t.Parallel()

	t.Run("returns distinct URL-like cells with scheme", func(t *testing.T) {
		t.Parallel()

		csv := "Company,Website\n" +
			"Acme,https://acme.com\n" +
			"Globex,www.globex.com\n" +
			"Initech,n/a\n" +
			"Acme again,https://acme.com/\n" +
			"Short\n" +
			"Umbrella,\"http://umbrella.io/contact, main\"\n"
		server, _ := newSheetServer(t, csv)
		svc := mshttp.NewSheetService(mshttp.WithExportBase(server.URL))

		urls, err := svc.URLs(context.Background(), testSheetURL, "Website")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://acme.com",
			"https://www.globex.com",
			"http://umbrella.io/contact, main",
		}, urls)
	})

	t.Run("returns ENOTFOUND for unknown column", func(t *testing.T) {
		t.Parallel()

		server, _ := newSheetServer(t, "Company,Website\nAcme,acme.com\n")
		svc := mshttp.NewSheetService(mshttp.WithExportBase(server.URL))

		_, err := svc.URLs(context.Background(), testSheetURL, "URL")

		require.Error(t, err)
		assert.Equal(t, mailscout.ENOTFOUND, mailscout.ErrorCode(err))
	})
}

func TestNormalizeSheetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell string
		want string
		ok   bool
	}{
		{cell: "https://acme.com", want: "https://acme.com", ok: true},
		{cell: "HTTP://ACME.COM", want: "HTTP://ACME.COM", ok: true},
		{cell: " www.acme.com ", want: "https://www.acme.com", ok: true},
		{cell: `"www.acme.com"`, want: "https://www.acme.com", ok: true},
		{cell: "acme.com", ok: false},
		{cell: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			t.Parallel()

			got, ok := mshttp.NormalizeSheetURL(tt.cell)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
