package ingest

import (
	"reflect"
	"testing"
)

func TestNormalizeFillsFixedColumnSet(t *testing.T) {
	out := Normalize([]RawRecord{{"title": "Depa en Lince"}})
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	rec := out[0]

	if rec.Title == nil || *rec.Title != "Depa en Lince" {
		t.Errorf("title = %v, want Depa en Lince", rec.Title)
	}
	// Absent columns are present with the null sentinel.
	nulls := 0
	for _, col := range columns {
		if col.IsNull(&rec) {
			nulls++
		}
	}
	if nulls != len(columns)-1 {
		t.Errorf("null columns = %d, want %d", nulls, len(columns)-1)
	}
}

func TestNormalizeNumericCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{name: "json number", value: 120.0, want: floatPtr(120)},
		{name: "numeric string", value: "120", want: floatPtr(120)},
		{name: "decimal string", value: "85.5", want: floatPtr(85.5)},
		{name: "garbage string", value: "ochenta", want: nil},
		{name: "empty string", value: "", want: nil},
		{name: "boolean", value: true, want: floatPtr(1)},
		{name: "explicit null", value: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize([]RawRecord{{"area_numeric": tt.value}})
			got := out[0].AreaNumeric
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("area_numeric = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("area_numeric = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestNormalizeBooleanStaysTriState(t *testing.T) {
	out := Normalize([]RawRecord{
		{"has_pool": true},
		{"has_pool": false},
		{}, // unknown, must not collapse to false
	})

	if out[0].HasPool == nil || !*out[0].HasPool {
		t.Error("expected has_pool true")
	}
	if out[1].HasPool == nil || *out[1].HasPool {
		t.Error("expected has_pool false")
	}
	if out[2].HasPool != nil {
		t.Errorf("expected has_pool unknown, got %v", *out[2].HasPool)
	}
}

func TestNormalizeListPassthrough(t *testing.T) {
	out := Normalize([]RawRecord{
		{"image_urls": []any{"a.jpg", "b.jpg"}},
	})
	want := []string{"a.jpg", "b.jpg"}
	if !reflect.DeepEqual(out[0].ImageURLs, want) {
		t.Errorf("image_urls = %v, want %v", out[0].ImageURLs, want)
	}
}

func TestNormalizeFlattensOneLevel(t *testing.T) {
	out := Normalize([]RawRecord{
		{"nested": map[string]any{"thing": 1.0}, "bedrooms": 3.0},
	})
	if out[0].Bedrooms == nil || *out[0].Bedrooms != 3 {
		t.Errorf("bedrooms = %v, want 3", out[0].Bedrooms)
	}
}

func TestNormalizeStripsStrayMarkup(t *testing.T) {
	out := Normalize([]RawRecord{
		{"title": "<b>Casa</b>  en Lima"},
	})
	if out[0].Title == nil || *out[0].Title != "Casa en Lima" {
		t.Errorf("title = %v, want Casa en Lima", out[0].Title)
	}
}
