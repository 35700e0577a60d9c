package goquery

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxJSONDepth bounds the walk over decoded script data.
const maxJSONDepth = 32

// scriptKeyPatterns capture values of JSON-like fields that usually hold an
// address.
var scriptKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"email"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
	regexp.MustCompile(`"emailAddress"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
	regexp.MustCompile(`"mail"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
	regexp.MustCompile(`"e-mail"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
	regexp.MustCompile(`"contactEmail"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
	regexp.MustCompile(`"support_email"\s*:\s*"([^"]+@[^"]+\.[^"]+)"`),
}

// jsonObjectPattern matches brace-delimited objects without nested braces.
var jsonObjectPattern = regexp.MustCompile(`\{[^{}]*\}`)

// obfuscationPatterns detect client-side string building.
var obfuscationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`['"]\s*\+\s*['"]`),
	regexp.MustCompile(`\.join\(`),
	regexp.MustCompile(`\.reverse\(`),
	regexp.MustCompile(`String\.fromCharCode`),
}

var quotedLiteral = regexp.MustCompile(`['"][a-zA-Z0-9._%+@-]+['"]`)

var quoteStripper = strings.NewReplacer(`'`, "", `"`, "")

// Scripts scans inline script blocks: known JSON keys, the general email
// grammar, and decoded JSON objects.
func Scripts(p *Page) []string {
	var out []string
	p.Doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		content := sel.Text()
		if content == "" {
			return
		}

		for _, re := range scriptKeyPatterns {
			for _, m := range re.FindAllStringSubmatch(content, -1) {
				out = append(out, m[1])
			}
		}
		out = append(out, findEmails(content)...)
		out = append(out, JSONEmails(content)...)
	})
	return out
}

// JSONEmails decodes every flat JSON object embedded in s and collects
// string values stored under email-, mail- or contact-like keys. Objects
// that fail to decode are skipped.
func JSONEmails(s string) []string {
	var out []string
	for _, raw := range jsonObjectPattern.FindAllString(s, -1) {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			continue
		}
		out = append(out, EmailsInJSON(v)...)
	}
	return out
}

// EmailsInJSON walks a value decoded by encoding/json and collects string
// values under email-, mail- or contact-like keys. Values nested deeper
// than maxJSONDepth are not visited.
func EmailsInJSON(v any) []string {
	return walkJSON(v, 0, nil)
}

func walkJSON(v any, depth int, out []string) []string {
	if depth > maxJSONDepth {
		return out
	}

	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if s, ok := t[k].(string); ok {
				if mentionsContact(k) && strings.Contains(s, "@") && strings.Contains(s, ".") {
					out = append(out, s)
				}
				continue
			}
			out = walkJSON(t[k], depth+1, out)
		}
	case []any:
		for _, item := range t {
			out = walkJSON(item, depth+1, out)
		}
	}
	return out
}

// ObfuscatedScripts reassembles addresses built at runtime from string
// fragments, e.g. 'info' + '@' + 'acme.com'. Only scripts that mention
// email, mail or contact are considered.
func ObfuscatedScripts(p *Page) []string {
	var out []string
	p.Doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		content := sel.Text()
		if !mentionsContact(content) || !isObfuscated(content) {
			return
		}

		joined := strings.Join(quotedLiteral.FindAllString(content, -1), "")
		if !strings.Contains(joined, "@") {
			return
		}
		out = append(out, findEmails(quoteStripper.Replace(joined))...)
	})
	return out
}

func mentionsContact(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "email") ||
		strings.Contains(s, "mail") ||
		strings.Contains(s, "contact")
}

func isObfuscated(s string) bool {
	for _, re := range obfuscationPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// HiddenInputs scans the values of hidden form inputs.
func HiddenInputs(p *Page) []string {
	var out []string
	p.Doc.Find(`input[type="hidden"]`).Each(func(_ int, sel *goquery.Selection) {
		value, _ := sel.Attr("value")
		if strings.Contains(value, "@") {
			out = append(out, findEmails(value)...)
		}
	})
	return out
}
