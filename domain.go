package mailscout

import (
	"net/url"
	"sort"
	"strings"
)

// DomainOf returns the last two labels of the URL's hostname, a rough
// stand-in for the registrable domain. Multi-part public suffixes are not
// recognized: "https://sub.example.co.uk" yields "co.uk".
// The bool result is false if the URL cannot be parsed or has no host.
func DomainOf(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := u.Hostname()
	if host == "" {
		return "", false
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host, true
	}
	return labels[len(labels)-2] + "." + labels[len(labels)-1], true
}

// PrioritizeByDomain sorts emails lexicographically, placing addresses that
// contain domain before all others. An empty domain matches nothing.
func PrioritizeByDomain(emails []string, domain string) []string {
	var matching, other []string
	for _, e := range emails {
		if domain != "" && strings.Contains(e, domain) {
			matching = append(matching, e)
		} else {
			other = append(other, e)
		}
	}
	sort.Strings(matching)
	sort.Strings(other)

	out := make([]string, 0, len(emails))
	out = append(out, matching...)
	return append(out, other...)
}
