package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/aladelca/rental-finder/internal/ingest"
)

func sampleReport() *ingest.ProfileReport {
	return ingest.Profile([]ingest.ListingRecord{
		{Location: ptr("Miraflores"), Currency: ptr("PEN"), PriceNumeric: fptr(2500)},
		{Location: ptr("Surco"), Currency: ptr("PEN")},
	})
}

func ptr(s string) *string    { return &s }
func fptr(f float64) *float64 { return &f }

func TestSaveAndLoadProfile(t *testing.T) {
	dir := t.TempDir()

	report := sampleReport()
	path, err := SaveProfile(dir, report)
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("report written outside analysis dir: %s", path)
	}

	loaded, loadedPath, err := LatestProfile(dir)
	if err != nil {
		t.Fatalf("LatestProfile failed: %v", err)
	}
	if loadedPath != path {
		t.Errorf("latest profile = %s, want %s", loadedPath, path)
	}
	if loaded.RowCount != report.RowCount {
		t.Errorf("row_count = %d, want %d", loaded.RowCount, report.RowCount)
	}
	if loaded.UniqueCounts["location"] != 2 {
		t.Errorf("unique_counts[location] = %d, want 2", loaded.UniqueCounts["location"])
	}
}

func TestNullCountSummaryShape(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()
	if _, err := SaveProfile(dir, report); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "null_counts_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one null-count summary, got %v", matches)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}

	// Header plus one row per column, in fixed column order.
	if len(rows) != len(report.Columns)+1 {
		t.Fatalf("summary rows = %d, want %d", len(rows), len(report.Columns)+1)
	}
	if rows[0][0] != "column" || rows[0][1] != "null_count" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	for i, col := range report.Columns {
		if rows[i+1][0] != col {
			t.Errorf("row %d column = %s, want %s", i+1, rows[i+1][0], col)
		}
	}
}

func TestLatestProfileEmptyDir(t *testing.T) {
	if _, _, err := LatestProfile(t.TempDir()); err == nil {
		t.Error("expected an error when no reports exist")
	}
}
