package ingest

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// normalizeSpace collapses multiple spaces into one and trims the string.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripMarkup converts HTML fragments to plain text. Scraped text fields are
// usually already plain, so strings without a tag are returned untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return normalizeSpace(doc.Text())
}

// canonicalList returns a sorted, duplicate-free copy of a list column so
// element order never creates spurious differences between rows.
func canonicalList(items []string) []string {
	if items == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, v := range items {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
