package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/aladelca/rental-finder/internal/ingest"
)

// WriteDataset writes the final dataset to a timestamped parquet file under
// dir and returns its path. The columnar schema is derived from the fixed
// ListingRecord column set; nullable columns map to optional fields.
func WriteDataset(dir string, records []ingest.ListingRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("rental_cleaned_%s.parquet", ts))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create dataset file: %w", err)
	}

	w := parquet.NewGenericWriter[ingest.ListingRecord](f)
	if _, err := w.Write(records); err != nil {
		f.Close()
		return "", fmt.Errorf("write dataset rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("finalize dataset: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close dataset file: %w", err)
	}
	return path, nil
}
