package ingest

// correctableFields are the fields the external correction step may rewrite.
// Only non-null corrected values override the original record.
var correctableFields = []string{
	"price_raw", "price_numeric", "currency", "has_price",
	"location", "has_location", "area_raw", "area_numeric",
	"bedrooms", "bathrooms", "has_parking", "parking_count",
	"has_pool", "has_garden", "has_balcony", "has_elevator",
	"has_security", "has_gym", "is_furnished", "allows_pets",
	"is_new", "has_terrace", "has_laundry", "has_air_conditioning",
}

// amenityFields are the boolean amenity flags counted into feature_count.
var amenityFields = []string{
	"has_parking", "has_pool", "has_garden", "has_balcony",
	"has_elevator", "has_security", "has_gym", "is_furnished",
	"allows_pets", "is_new", "has_terrace", "has_laundry",
	"has_air_conditioning",
}

// MergeCorrected overlays a corrected record onto its original: non-null
// corrected values win, everything else is kept from the original. The
// derived quality metrics (data_completeness, feature_count) are recomputed
// from the merged result. Neither input is modified.
func MergeCorrected(original, corrected RawRecord) RawRecord {
	merged := make(RawRecord, len(original)+4)
	for k, v := range original {
		merged[k] = v
	}
	for _, field := range correctableFields {
		if v, ok := corrected[field]; ok && v != nil {
			merged[field] = v
		}
	}

	complete := 0
	for _, field := range correctableFields {
		if isCompleteValue(merged[field]) {
			complete++
		}
	}
	merged["data_completeness"] = float64(complete) / float64(len(correctableFields)) * 100

	features := 0
	for _, field := range amenityFields {
		if isTruthy(merged[field]) {
			features++
		}
	}
	merged["feature_count"] = float64(features)

	return merged
}

// isCompleteValue mirrors the original completeness rule: a field counts as
// filled unless it is null, an empty string, the "N/A" placeholder, or false.
func isCompleteValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != "" && t != "N/A"
	case bool:
		return t
	}
	return true
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	}
	return false
}
