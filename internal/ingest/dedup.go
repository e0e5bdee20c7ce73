package ingest

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Deduplicate collapses near-duplicate rows using a priority chain of exact
// identity keys: URL first, then normalized full text, then a composite
// business key. Rows are sorted by scrape timestamp beforehand (unknowns
// last) so keep-first dedup naturally prefers the earliest-by-sort-order row.
// Matching is always exact; a row whose identity is entirely unknown is never
// collapsed into another.
func Deduplicate(records []ListingRecord) []ListingRecord {
	recs := make([]ListingRecord, len(records))
	copy(recs, records)

	// List columns are canonicalized so element order never creates false
	// non-duplicates.
	for i := range recs {
		recs[i].ImageURLs = canonicalList(recs[i].ImageURLs)
	}

	// ISO-8601 timestamps sort correctly as strings.
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].ScrapedAt, recs[j].ScrapedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	var withURL, noURL []ListingRecord
	for _, r := range recs {
		if hasRealURL(r.URL) {
			withURL = append(withURL, r)
		} else {
			noURL = append(noURL, r)
		}
	}

	withURL = dedupByURL(withURL)
	noURL = dedupByFullText(noURL)
	noURL = dedupByCompositeKey(noURL)

	return append(withURL, noURL...)
}

// hasRealURL reports whether a row carries a usable identity URL: present,
// longer than a minimal length, and a well-formed absolute http(s) link.
func hasRealURL(u *string) bool {
	if u == nil {
		return false
	}
	s := *u
	if len(s) <= 3 {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return parsed.IsAbs() && (parsed.Scheme == "http" || parsed.Scheme == "https")
}

func dedupByURL(recs []ListingRecord) []ListingRecord {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		key := *r.URL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupByFullText(recs []ListingRecord) []ListingRecord {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if r.FullText == nil {
			out = append(out, r)
			continue
		}
		key := normalizeSpace(*r.FullText)
		if key == "" {
			out = append(out, r)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupByCompositeKey(recs []ListingRecord) []ListingRecord {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		key, ok := compositeKey(&r)
		if !ok {
			// Entirely unknown identity: keep the row.
			out = append(out, r)
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// compositeKey builds the fallback identity tuple from title, location,
// property type, canonical price, canonical area, bedrooms and bathrooms.
// The second return value is false when every component is unknown.
func compositeKey(r *ListingRecord) (string, bool) {
	parts := []string{
		strKey(r.Title),
		strKey(r.Location),
		strKey(r.PropertyType),
		numKey(r.PriceNumeric),
		numKey(r.AreaNumeric),
		numKey(r.Bedrooms),
		numKey(r.Bathrooms),
	}
	any := false
	for _, p := range parts {
		if p != nullKey {
			any = true
			break
		}
	}
	return strings.Join(parts, "\x1f"), any
}

const nullKey = "\x00"

func strKey(v *string) string {
	if v == nil {
		return nullKey
	}
	return "s:" + *v
}

func numKey(v *float64) string {
	if v == nil {
		return nullKey
	}
	return "n:" + strconv.FormatFloat(*v, 'g', -1, 64)
}
