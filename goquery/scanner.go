// Package goquery implements email candidate scanning over HTML documents
// using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailscout"
)

// Ensure Scanner implements mailscout.Scanner at compile time.
var _ mailscout.Scanner = (*Scanner)(nil)

// Page is a parsed HTML document together with its raw markup.
type Page struct {
	Doc  *goquery.Document
	HTML string
}

// NewPage parses html into a Page.
func NewPage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{Doc: doc, HTML: html}, nil
}

// Strategy extracts raw email candidates from a page.
// Strategies are independent and return unvalidated strings.
type Strategy func(p *Page) []string

// DefaultStrategies run on every page.
var DefaultStrategies = []Strategy{
	VisibleText,
	MailtoLinks,
	ClassHinted,
	AllElements,
	Scripts,
	MetaTags,
	ProviderDomains,
}

// ContactStrategies run only on contact pages, after DefaultStrategies.
var ContactStrategies = []Strategy{
	ObfuscatedScripts,
	HiddenInputs,
}

// Scanner runs a fixed list of strategies over HTML.
type Scanner struct {
	strategies        []Strategy
	contactStrategies []Strategy
}

// NewScanner creates a Scanner using DefaultStrategies and ContactStrategies.
func NewScanner() *Scanner {
	return &Scanner{
		strategies:        DefaultStrategies,
		contactStrategies: ContactStrategies,
	}
}

// Scan parses html and returns the candidates of every strategy in order.
func (s *Scanner) Scan(html string, contactPage bool) ([]string, error) {
	page, err := NewPage(html)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, strategy := range s.strategies {
		candidates = append(candidates, strategy(page)...)
	}
	if contactPage {
		for _, strategy := range s.contactStrategies {
			candidates = append(candidates, strategy(page)...)
		}
	}
	return candidates, nil
}

// findEmails returns every email-grammar match in s.
func findEmails(s string) []string {
	return mailscout.EmailPattern.FindAllString(s, -1)
}

// attrEmails scans every attribute value containing "@" on the selection.
func attrEmails(sel *goquery.Selection) []string {
	var out []string
	for _, n := range sel.Nodes {
		for _, attr := range n.Attr {
			if strings.Contains(attr.Val, "@") {
				out = append(out, findEmails(attr.Val)...)
			}
		}
	}
	return out
}
