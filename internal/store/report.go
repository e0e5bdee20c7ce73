package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aladelca/rental-finder/internal/ingest"
)

// SaveProfile writes the profile report as JSON plus a flat two-column CSV of
// null counts (in fixed column order) into the analysis directory. It returns
// the path of the JSON report.
func SaveProfile(analysisDir string, report *ingest.ProfileReport) (string, error) {
	if err := os.MkdirAll(analysisDir, 0o755); err != nil {
		return "", fmt.Errorf("create analysis dir: %w", err)
	}

	ts := time.Now().Format("20060102_150405")

	jsonPath := filepath.Join(analysisDir, fmt.Sprintf("profile_%s.json", ts))
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write profile report: %w", err)
	}

	csvPath := filepath.Join(analysisDir, fmt.Sprintf("null_counts_%s.csv", ts))
	if err := writeNullCounts(csvPath, report); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func writeNullCounts(path string, report *ingest.ProfileReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create null-count summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"column", "null_count"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, col := range report.Columns {
		if err := w.Write([]string{col, strconv.Itoa(report.NullCounts[col])}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// LatestProfile returns the newest profile_*.json in the analysis directory,
// decoded. Used by the inspection tooling.
func LatestProfile(analysisDir string) (*ingest.ProfileReport, string, error) {
	matches, err := filepath.Glob(filepath.Join(analysisDir, "profile_*.json"))
	if err != nil || len(matches) == 0 {
		return nil, "", fmt.Errorf("no profile reports found in %q", analysisDir)
	}

	// Timestamped names sort lexicographically.
	latest := matches[0]
	for _, m := range matches[1:] {
		if m > latest {
			latest = m
		}
	}

	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, "", fmt.Errorf("read profile report: %w", err)
	}
	var report ingest.ProfileReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, "", fmt.Errorf("decode profile report %q: %w", latest, err)
	}
	return &report, latest, nil
}
