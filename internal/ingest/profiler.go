package ingest

import (
	"math"
	"sort"
)

// Fixed profiling subsets. Unique counts only make sense for low-cardinality
// categorical columns; outlier detection is only meaningful for the two price
// columns.
var (
	categoricalColumns = []string{"location", "district", "property_type", "currency"}
	numericColumns     = []string{"price_numeric", "area_numeric", "bedrooms", "bathrooms", "price_per_sqm"}
	outlierColumns     = []string{"price_numeric", "price_per_sqm"}
)

const minOutlierObservations = 10

// Descriptive holds per-column summary statistics: non-null count, mean,
// sample standard deviation and the five-number summary.
type Descriptive struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q25   float64 `json:"25%"`
	Q50   float64 `json:"50%"`
	Q75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// OutlierBounds holds Tukey fences and the counts of observations strictly
// outside them.
type OutlierBounds struct {
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	NumBelow   int     `json:"num_below"`
	NumAbove   int     `json:"num_above"`
}

// ProfileReport is the read-only statistical profile of a dataset snapshot.
type ProfileReport struct {
	RowCount         int                      `json:"row_count"`
	Columns          []string                 `json:"columns"`
	NullCounts       map[string]int           `json:"null_counts"`
	UniqueCounts     map[string]int           `json:"unique_counts"`
	DescriptiveStats map[string]Descriptive   `json:"descriptive_stats"`
	OutliersIQR      map[string]OutlierBounds `json:"outliers_iqr"`
}

// Profile computes the statistical profile of the final dataset. It never
// mutates its input.
func Profile(records []ListingRecord) *ProfileReport {
	report := &ProfileReport{
		RowCount:         len(records),
		Columns:          Columns(),
		NullCounts:       make(map[string]int, len(columns)),
		UniqueCounts:     make(map[string]int, len(categoricalColumns)),
		DescriptiveStats: make(map[string]Descriptive, len(numericColumns)),
		OutliersIQR:      make(map[string]OutlierBounds),
	}

	for _, col := range columns {
		n := 0
		for i := range records {
			if col.IsNull(&records[i]) {
				n++
			}
		}
		report.NullCounts[col.Name] = n
	}

	for _, name := range categoricalColumns {
		col := columnByName(name)
		distinct := make(map[string]struct{})
		for i := range records {
			if v := *col.Str(&records[i]); v != nil {
				distinct[*v] = struct{}{}
			}
		}
		report.UniqueCounts[name] = len(distinct)
	}

	for _, name := range numericColumns {
		values := numericValues(records, name)
		if len(values) == 0 {
			continue
		}
		report.DescriptiveStats[name] = describe(values)
	}

	for _, name := range outlierColumns {
		values := numericValues(records, name)
		if len(values) < minOutlierObservations {
			continue
		}
		report.OutliersIQR[name] = tukeyBounds(values)
	}

	return report
}

func columnByName(name string) Column {
	for _, c := range columns {
		if c.Name == name {
			return c
		}
	}
	return Column{}
}

func numericValues(records []ListingRecord, name string) []float64 {
	col := columnByName(name)
	if col.Num == nil {
		return nil
	}
	var values []float64
	for i := range records {
		if v := *col.Num(&records[i]); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

func describe(values []float64) Descriptive {
	s := append([]float64(nil), values...)
	sort.Float64s(s)

	n := len(s)
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range s {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return Descriptive{
		Count: n,
		Mean:  mean,
		Std:   std,
		Min:   s[0],
		Q25:   quantile(s, 0.25),
		Q50:   quantile(s, 0.50),
		Q75:   quantile(s, 0.75),
		Max:   s[n-1],
	}
}

// quantile computes the q-th quantile of sorted data using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// tukeyBounds computes IQR fences at Q1-1.5*IQR and Q3+1.5*IQR with counts of
// observations strictly outside them.
func tukeyBounds(values []float64) OutlierBounds {
	s := append([]float64(nil), values...)
	sort.Float64s(s)

	q1 := quantile(s, 0.25)
	q3 := quantile(s, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	below, above := 0, 0
	for _, v := range s {
		if v < lower {
			below++
		}
		if v > upper {
			above++
		}
	}
	return OutlierBounds{LowerBound: lower, UpperBound: upper, NumBelow: below, NumAbove: above}
}
