package mailscout

// Scanner pulls raw email candidates out of HTML.
type Scanner interface {
	// Scan runs every extraction strategy over html and returns the
	// concatenated, unvalidated candidates. Contact pages additionally get
	// the obfuscation heuristics.
	// Returns EINVALID only if the markup cannot be parsed at all.
	Scan(html string, contactPage bool) ([]string, error)
}
