package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aladelca/rental-finder/internal/store"
)

func main() {
	analysisDir := flag.String("analysis-dir", "processed_data/analysis", "directory holding profile reports")
	flag.Parse()

	report, path, err := store.LatestProfile(*analysisDir)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Profile: %s (%d rows)\n\n", path, report.RowCount)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Null counts")
	t.AppendHeader(table.Row{"Column", "Nulls"})
	for _, col := range report.Columns {
		t.AppendRow(table.Row{col, report.NullCounts[col]})
	}
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Unique values")
	t.AppendHeader(table.Row{"Column", "Unique"})
	for _, col := range sortedKeys(report.UniqueCounts) {
		t.AppendRow(table.Row{col, report.UniqueCounts[col]})
	}
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Descriptive statistics")
	t.AppendHeader(table.Row{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, col := range sortedKeys(report.DescriptiveStats) {
		d := report.DescriptiveStats[col]
		t.AppendRow(table.Row{
			col, d.Count,
			fmt.Sprintf("%.2f", d.Mean), fmt.Sprintf("%.2f", d.Std),
			fmt.Sprintf("%.2f", d.Min), fmt.Sprintf("%.2f", d.Q25),
			fmt.Sprintf("%.2f", d.Q50), fmt.Sprintf("%.2f", d.Q75),
			fmt.Sprintf("%.2f", d.Max),
		})
	}
	t.Render()

	if len(report.OutliersIQR) > 0 {
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("IQR outliers")
		t.AppendHeader(table.Row{"Column", "Lower", "Upper", "Below", "Above"})
		for _, col := range sortedKeys(report.OutliersIQR) {
			o := report.OutliersIQR[col]
			t.AppendRow(table.Row{
				col,
				fmt.Sprintf("%.2f", o.LowerBound), fmt.Sprintf("%.2f", o.UpperBound),
				o.NumBelow, o.NumAbove,
			})
		}
		t.Render()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
