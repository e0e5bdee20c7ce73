package ingest

// RawRecord is an untrusted listing record as decoded from a scraper or
// correction-agent JSON file. Any subset of the declared columns may be
// present, and values are loosely typed.
type RawRecord map[string]any

// ListingRecord is the canonical row shape of the cleaned dataset. Every
// column is always present; absent or uncoercible values are nil, never a
// missing key. Pointer fields distinguish "unknown" from zero values, which
// the profiler relies on for null counts.
type ListingRecord struct {
	Index       *float64 `json:"index" parquet:"index,optional"`
	GlobalIndex *float64 `json:"global_index" parquet:"global_index,optional"`
	ScrapedAt   *string  `json:"scraped_at" parquet:"scraped_at,optional"`
	Title       *string  `json:"title" parquet:"title,optional"`
	URL         *string  `json:"url" parquet:"url,optional"`

	Location     *string `json:"location" parquet:"location,optional"`
	HasLocation  *bool   `json:"has_location" parquet:"has_location,optional"`
	District     *string `json:"district" parquet:"district,optional"`
	PropertyType *string `json:"property_type" parquet:"property_type,optional"`

	PriceRaw     *string  `json:"price_raw" parquet:"price_raw,optional"`
	PriceNumeric *float64 `json:"price_numeric" parquet:"price_numeric,optional"`
	Currency     *string  `json:"currency" parquet:"currency,optional"`
	HasPrice     *bool    `json:"has_price" parquet:"has_price,optional"`
	PricePerSqm  *float64 `json:"price_per_sqm" parquet:"price_per_sqm,optional"`

	AreaRaw     *string  `json:"area_raw" parquet:"area_raw,optional"`
	AreaNumeric *float64 `json:"area_numeric" parquet:"area_numeric,optional"`
	Bedrooms    *float64 `json:"bedrooms" parquet:"bedrooms,optional"`
	Bathrooms   *float64 `json:"bathrooms" parquet:"bathrooms,optional"`

	HasParking         *bool    `json:"has_parking" parquet:"has_parking,optional"`
	ParkingCount       *float64 `json:"parking_count" parquet:"parking_count,optional"`
	HasPool            *bool    `json:"has_pool" parquet:"has_pool,optional"`
	HasGarden          *bool    `json:"has_garden" parquet:"has_garden,optional"`
	HasBalcony         *bool    `json:"has_balcony" parquet:"has_balcony,optional"`
	HasElevator        *bool    `json:"has_elevator" parquet:"has_elevator,optional"`
	HasSecurity        *bool    `json:"has_security" parquet:"has_security,optional"`
	HasGym             *bool    `json:"has_gym" parquet:"has_gym,optional"`
	IsFurnished        *bool    `json:"is_furnished" parquet:"is_furnished,optional"`
	AllowsPets         *bool    `json:"allows_pets" parquet:"allows_pets,optional"`
	IsNew              *bool    `json:"is_new" parquet:"is_new,optional"`
	HasTerrace         *bool    `json:"has_terrace" parquet:"has_terrace,optional"`
	HasLaundry         *bool    `json:"has_laundry" parquet:"has_laundry,optional"`
	HasAirConditioning *bool    `json:"has_air_conditioning" parquet:"has_air_conditioning,optional"`

	ImageCount *float64 `json:"image_count" parquet:"image_count,optional"`
	ImageURLs  []string `json:"image_urls" parquet:"image_urls,list"`

	Page         *float64 `json:"page" parquet:"page,optional"`
	SitePage     *float64 `json:"site_page" parquet:"site_page,optional"`
	ElementClass *string  `json:"element_class" parquet:"element_class,optional"`
	ElementTag   *string  `json:"element_tag" parquet:"element_tag,optional"`

	DataCompleteness *float64 `json:"data_completeness" parquet:"data_completeness,optional"`
	FeatureCount     *float64 `json:"feature_count" parquet:"feature_count,optional"`
	FullText         *string  `json:"full_text" parquet:"full_text,optional"`
}

// ColumnKind classifies how a column is coerced and profiled.
type ColumnKind int

const (
	ColString ColumnKind = iota
	ColNumeric
	ColBool
	ColList
)

// Column describes one field of the fixed schema: its wire name, its kind,
// and an accessor into a ListingRecord. Accessors return a pointer to the
// field so the normalizer can assign and the profiler can inspect.
type Column struct {
	Name string
	Kind ColumnKind

	Num  func(*ListingRecord) **float64
	Str  func(*ListingRecord) **string
	Bool func(*ListingRecord) **bool
	List func(*ListingRecord) *[]string
}

// columns is the fixed, ordered column set. Order here is the order of the
// output dataset and of the null-count summary.
var columns = []Column{
	{Name: "index", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.Index }},
	{Name: "global_index", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.GlobalIndex }},
	{Name: "scraped_at", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.ScrapedAt }},
	{Name: "title", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.Title }},
	{Name: "url", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.URL }},
	{Name: "location", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.Location }},
	{Name: "has_location", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasLocation }},
	{Name: "district", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.District }},
	{Name: "property_type", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.PropertyType }},
	{Name: "price_raw", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.PriceRaw }},
	{Name: "price_numeric", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.PriceNumeric }},
	{Name: "currency", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.Currency }},
	{Name: "has_price", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasPrice }},
	{Name: "price_per_sqm", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.PricePerSqm }},
	{Name: "area_raw", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.AreaRaw }},
	{Name: "area_numeric", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.AreaNumeric }},
	{Name: "bedrooms", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.Bedrooms }},
	{Name: "bathrooms", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.Bathrooms }},
	{Name: "has_parking", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasParking }},
	{Name: "parking_count", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.ParkingCount }},
	{Name: "has_pool", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasPool }},
	{Name: "has_garden", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasGarden }},
	{Name: "has_balcony", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasBalcony }},
	{Name: "has_elevator", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasElevator }},
	{Name: "has_security", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasSecurity }},
	{Name: "has_gym", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasGym }},
	{Name: "is_furnished", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.IsFurnished }},
	{Name: "allows_pets", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.AllowsPets }},
	{Name: "is_new", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.IsNew }},
	{Name: "has_terrace", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasTerrace }},
	{Name: "has_laundry", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasLaundry }},
	{Name: "has_air_conditioning", Kind: ColBool, Bool: func(r *ListingRecord) **bool { return &r.HasAirConditioning }},
	{Name: "image_count", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.ImageCount }},
	{Name: "image_urls", Kind: ColList, List: func(r *ListingRecord) *[]string { return &r.ImageURLs }},
	{Name: "page", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.Page }},
	{Name: "site_page", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.SitePage }},
	{Name: "element_class", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.ElementClass }},
	{Name: "element_tag", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.ElementTag }},
	{Name: "data_completeness", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.DataCompleteness }},
	{Name: "feature_count", Kind: ColNumeric, Num: func(r *ListingRecord) **float64 { return &r.FeatureCount }},
	{Name: "full_text", Kind: ColString, Str: func(r *ListingRecord) **string { return &r.FullText }},
}

// Columns returns the ordered names of the fixed column set.
func Columns() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// IsNull reports whether the named column holds the null sentinel in r.
// List columns are null when the slice itself is nil.
func (c Column) IsNull(r *ListingRecord) bool {
	switch c.Kind {
	case ColNumeric:
		return *c.Num(r) == nil
	case ColString:
		return *c.Str(r) == nil
	case ColBool:
		return *c.Bool(r) == nil
	case ColList:
		return *c.List(r) == nil
	}
	return true
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
