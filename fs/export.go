// Package fs provides file-based output for job exports.
package fs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicFile is written under a temporary name and moved into place on
// Commit, so readers never observe a partial file.
type AtomicFile struct {
	path string
	f    *os.File
}

// CreateAtomic creates the parent directories of path and opens the
// temporary file path+".tmp" for writing.
func CreateAtomic(path string) (*AtomicFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path + ".tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{path: path, f: f}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Commit closes the temporary file and renames it to the final path,
// replacing any existing file.
func (a *AtomicFile) Commit() error {
	if err := a.f.Close(); err != nil {
		_ = os.Remove(a.f.Name())
		return err
	}
	return os.Rename(a.f.Name(), a.path)
}

// Abort discards the temporary file.
func (a *AtomicFile) Abort() error {
	_ = a.f.Close()
	return os.Remove(a.f.Name())
}

// WriteEmailsCSV writes emails as a single-column CSV with an "email" header.
func WriteEmailsCSV(w io.Writer, emails []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"email"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, email := range emails {
		if err := cw.Write([]string{email}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ExportEmails atomically writes emails as CSV to path.
func ExportEmails(path string, emails []string) error {
	f, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	if err := WriteEmailsCSV(f, emails); err != nil {
		_ = f.Abort()
		return err
	}
	return f.Commit()
}
