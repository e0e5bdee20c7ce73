package ingest

import (
	"strconv"
	"strings"
)

// Normalize maps loosely-typed raw records onto the fixed column set. Missing
// columns become nil, numeric columns are coerced (uncoercible values become
// nil, never an error), boolean columns stay tri-state, and list columns pass
// through structurally. The input is not modified.
func Normalize(records []RawRecord) []ListingRecord {
	out := make([]ListingRecord, 0, len(records))
	for _, raw := range records {
		if raw == nil {
			continue
		}
		out = append(out, normalizeRecord(flatten(raw)))
	}
	return out
}

func normalizeRecord(raw map[string]any) ListingRecord {
	var rec ListingRecord
	for _, col := range columns {
		v, ok := raw[col.Name]
		if !ok || v == nil {
			continue
		}
		switch col.Kind {
		case ColNumeric:
			*col.Num(&rec) = coerceFloat(v)
		case ColString:
			*col.Str(&rec) = coerceString(v)
		case ColBool:
			*col.Bool(&rec) = coerceBool(v)
		case ColList:
			*col.List(&rec) = coerceStringList(v)
		}
	}
	return rec
}

// flatten expands one level of nested objects into dotted keys, the shape the
// correction agent emits for grouped fields. Deeper nesting is left alone.
func flatten(raw RawRecord) map[string]any {
	flat := make(map[string]any, len(raw))
	for k, v := range raw {
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range nested {
				flat[k+"."+nk] = nv
			}
			continue
		}
		flat[k] = v
	}
	return flat
}

func coerceFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return floatPtr(t)
	case int:
		return floatPtr(float64(t))
	case int64:
		return floatPtr(float64(t))
	case bool:
		if t {
			return floatPtr(1)
		}
		return floatPtr(0)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return floatPtr(f)
	}
	return nil
}

func coerceBool(v any) *bool {
	switch t := v.(type) {
	case bool:
		return boolPtr(t)
	case float64:
		return boolPtr(t != 0)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1":
			return boolPtr(true)
		case "false", "0":
			return boolPtr(false)
		}
	}
	return nil
}

func coerceString(v any) *string {
	switch t := v.(type) {
	case string:
		return strPtr(stripMarkup(t))
	case float64:
		return strPtr(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		return strPtr(strconv.FormatBool(t))
	}
	return nil
}

func coerceStringList(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
