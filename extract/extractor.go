// Package extract provides email harvesting orchestration. It coordinates
// fetching, scanning, validation and deduplication for single websites and
// drives jobs of many websites to completion.
package extract

import (
	"context"
	"net/url"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mailscout"
)

// DefaultContactPaths are the sub-pages fetched for every website, in order.
var DefaultContactPaths = []string{
	"/contact",
	"/contact-us",
	"/contact.html",
	"/contact-us.html",
	"/about",
	"/about-us",
	"/about.html",
	"/about-us.html",
	"/get-in-touch",
	"/reach-us",
	"/connect",
	"/reach-out",
	"/our-team",
	"/team",
	"/support",
	"/help",
	"/info",
}

// Ensure Extractor implements mailscout.Extractor at compile time.
var _ mailscout.Extractor = (*Extractor)(nil)

// Extractor harvests emails from a website's landing page and its likely
// contact pages.
type Extractor struct {
	Fetcher mailscout.Fetcher
	Scanner mailscout.Scanner

	// ContactPaths overrides DefaultContactPaths when non-nil.
	ContactPaths []string

	// IgnoreDomains overrides mailscout.IgnoreDomains when non-nil.
	IgnoreDomains []string
}

// NewExtractor creates an Extractor with the default contact paths and
// noise domains.
func NewExtractor(fetcher mailscout.Fetcher, scanner mailscout.Scanner) *Extractor {
	return &Extractor{
		Fetcher: fetcher,
		Scanner: scanner,
	}
}

// page identifies a scanned body. Identical bodies produce identical
// candidates, so each is scanned once per mode.
type page struct {
	sum     uint64
	contact bool
}

// Extract returns the deduplicated emails found on baseURL and its contact
// pages, own-domain addresses first.
func (e *Extractor) Extract(ctx context.Context, baseURL string) ([]string, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	found := mailscout.NewEmailSet()
	scanned := make(map[page]struct{})

	e.harvest(ctx, baseURL, false, found, scanned)

	for _, path := range e.contactPaths() {
		ref, err := url.Parse(path)
		if err != nil {
			continue
		}
		contactURL := base.ResolveReference(ref).String()
		if contactURL == baseURL {
			continue
		}
		e.harvest(ctx, contactURL, true, found, scanned)
	}

	emails := mailscout.Dedupe(found.Slice())
	domain, _ := mailscout.DomainOf(baseURL)
	return mailscout.PrioritizeByDomain(emails, domain), nil
}

// harvest fetches one page and adds its valid, non-noise candidates to found.
// Fetch and scan failures contribute nothing.
func (e *Extractor) harvest(ctx context.Context, pageURL string, contact bool, found *mailscout.EmailSet, scanned map[page]struct{}) {
	html, err := e.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return
	}

	key := page{sum: xxhash.Sum64String(html), contact: contact}
	if _, ok := scanned[key]; ok {
		return
	}
	scanned[key] = struct{}{}

	candidates, err := e.Scanner.Scan(html, contact)
	if err != nil {
		return
	}

	for _, c := range candidates {
		email, ok := mailscout.ValidateEmail(c)
		if !ok || mailscout.IsIgnored(email, e.IgnoreDomains) {
			continue
		}
		found.Add(email)
	}
}

func (e *Extractor) contactPaths() []string {
	if e.ContactPaths != nil {
		return e.ContactPaths
	}
	return DefaultContactPaths
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, mailscout.Errorf(mailscout.EINVALID, "base URL required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, mailscout.Errorf(mailscout.EINVALID, "invalid base URL %q", baseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, mailscout.Errorf(mailscout.EINVALID, "base URL must be http or https: %q", baseURL)
	}
	if u.Host == "" {
		return nil, mailscout.Errorf(mailscout.EINVALID, "base URL has no host: %q", baseURL)
	}
	return u, nil
}
