package ingest

import "strings"

// ReconcileConfig carries the currency-reconciliation constants. They are
// injected rather than declared as package constants so alternate thresholds
// can be unit-tested and configured per deployment.
type ReconcileConfig struct {
	ReferenceCurrency string  // currency every surviving row is expressed in
	ReferenceMarker   string  // token in price_raw implying the reference currency
	USDMarker         string  // token in price_raw implying USD
	ExchangeRate      float64 // reference-currency units per USD
	MinPrice          float64 // exclusive lower bound of plausible prices
	MaxPrice          float64 // inclusive upper bound of plausible prices
	SegmentSeparator  string  // multi-field separator inside price_raw
}

// DefaultReconcileConfig returns the constants of the original deployment:
// everything in soles, 3.8 soles per dollar, plausible prices in (10, 90000].
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		ReferenceCurrency: "PEN",
		ReferenceMarker:   "S/",
		USDMarker:         "USD",
		ExchangeRate:      3.8,
		MinPrice:          10,
		MaxPrice:          90000,
		SegmentSeparator:  " · ",
	}
}

// ReconcileRecord recomputes the canonical price of a single row in place and
// reports whether the row passes the plausibility filter. The row's currency
// is always rewritten to the reference currency; a row that fails numeric
// extraction fails the range test via its nil price, there is no separate
// error path.
func (c ReconcileConfig) ReconcileRecord(rec *ListingRecord) bool {
	raw := ""
	if rec.PriceRaw != nil {
		raw = *rec.PriceRaw
	}

	// Currency inference only overwrites rows matched by a marker rule.
	isRef := strings.Contains(raw, c.ReferenceMarker)
	isUSD := strings.Contains(raw, c.USDMarker) && !isRef
	if isRef {
		rec.Currency = strPtr(c.ReferenceCurrency)
	} else if isUSD {
		rec.Currency = strPtr("USD")
	}

	// Numeric extraction from the first segment of the raw string.
	firstSeg := raw
	if i := strings.Index(raw, c.SegmentSeparator); i != -1 {
		firstSeg = raw[:i]
	}
	cleaned := strings.ReplaceAll(firstSeg, c.ReferenceMarker, "")
	cleaned = strings.ReplaceAll(cleaned, c.USDMarker, "")
	cleaned = strings.TrimSpace(cleaned)

	if price, ok := ParseAmount(cleaned); ok {
		if rec.Currency != nil && *rec.Currency == "USD" {
			price *= c.ExchangeRate
		}
		rec.PriceNumeric = floatPtr(price)
	} else {
		rec.PriceNumeric = nil
	}

	// The dataset is always expressed in one currency after this point.
	rec.Currency = strPtr(c.ReferenceCurrency)

	if rec.PriceNumeric == nil || !(*rec.PriceNumeric > c.MinPrice && *rec.PriceNumeric <= c.MaxPrice) {
		return false
	}

	if rec.AreaNumeric != nil && *rec.AreaNumeric > 0 {
		rec.PricePerSqm = floatPtr(*rec.PriceNumeric / *rec.AreaNumeric)
	} else {
		rec.PricePerSqm = nil
	}
	return true
}

// Reconcile applies ReconcileRecord across the dataset and returns the rows
// that survive the plausibility filter.
func (c ReconcileConfig) Reconcile(records []ListingRecord) []ListingRecord {
	out := make([]ListingRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		if c.ReconcileRecord(&rec) {
			out = append(out, rec)
		}
	}
	return out
}
