package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ClassHints are class name fragments commonly used on elements holding
// contact details.
var ClassHints = []string{
	"email",
	"mail",
	"e-mail",
	"contact",
	"email-address",
	"mail-link",
	"mini-contacts",
	"footer-contact",
	"header-contact",
	"contact-info",
	"contact-details",
	"contact-email",
	"footer-email",
	"header-email",
	"info",
}

// ProviderDomainList holds public mailbox providers that are searched for
// directly in the raw markup.
var ProviderDomainList = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"aol.com",
	"icloud.com",
	"protonmail.com",
	"mail.com",
	"zoho.com",
	"yandex.com",
	"gmx.com",
}

var providerPatterns = compileProviderPatterns(ProviderDomainList)

func compileProviderPatterns(domains []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(domains))
	for _, d := range domains {
		patterns = append(patterns, regexp.MustCompile(`[a-zA-Z0-9._%+-]+@`+regexp.QuoteMeta(d)))
	}
	return patterns
}

// VisibleText scans the text content of the document body. Text nodes are
// joined with a space so adjacent elements in minified markup stay apart.
func VisibleText(p *Page) []string {
	return findEmails(spacedText(p.Doc.Find("body")))
}

// spacedText returns the text nodes under sel joined by single spaces.
func spacedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// MailtoLinks collects mailto: targets and scans every anchor attribute.
func MailtoLinks(p *Page) []string {
	var out []string
	p.Doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			if addr, ok := mailtoAddress(href); ok {
				out = append(out, addr)
			}
		}
		out = append(out, attrEmails(sel)...)
	})
	return out
}

// mailtoAddress returns the percent-decoded address of a mailto: link,
// without any query string.
func mailtoAddress(href string) (string, bool) {
	const scheme = "mailto:"

	href = strings.TrimSpace(href)
	if len(href) < len(scheme) || !strings.EqualFold(href[:len(scheme)], scheme) {
		return "", false
	}

	addr, _, _ := strings.Cut(href[len(scheme):], "?")
	addr = strings.TrimSpace(addr)
	if decoded, err := url.PathUnescape(addr); err == nil {
		addr = decoded
	}
	return addr, addr != ""
}

// ClassHinted scans elements whose class attribute contains a ClassHints
// fragment, ignoring case, both text and attribute values.
func ClassHinted(p *Page) []string {
	var out []string
	classed := p.Doc.Find("[class]")
	for _, hint := range ClassHints {
		classed.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			class, _ := sel.Attr("class")
			return strings.Contains(strings.ToLower(class), hint)
		}).Each(func(_ int, sel *goquery.Selection) {
			out = append(out, findEmails(spacedText(sel))...)
			out = append(out, attrEmails(sel)...)
		})
	}
	return out
}

// AllElements scans the own text and the attributes of every element.
// Only direct text children are considered so nested elements are not
// scanned once per ancestor.
func AllElements(p *Page) []string {
	var out []string
	p.Doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode && strings.Contains(c.Data, "@") {
					out = append(out, findEmails(c.Data)...)
				}
			}
		}
		out = append(out, attrEmails(sel)...)
	})
	return out
}

// MetaTags scans the content attribute of meta elements.
func MetaTags(p *Page) []string {
	var out []string
	p.Doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		if strings.Contains(content, "@") {
			out = append(out, findEmails(content)...)
		}
	})
	return out
}

// ProviderDomains searches the raw markup for addresses at well-known
// mailbox providers.
func ProviderDomains(p *Page) []string {
	var out []string
	for _, re := range providerPatterns {
		out = append(out, re.FindAllString(p.HTML, -1)...)
	}
	return out
}
