package mock

import "github.com/fwojciec/mailscout"

var _ mailscout.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of mailscout.Scanner.
type Scanner struct {
	ScanFn func(html string, contactPage bool) ([]string, error)
}

func (s *Scanner) Scan(html string, contactPage bool) ([]string, error) {
	return s.ScanFn(html, contactPage)
}
