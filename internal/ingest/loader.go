package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadDir reads every *.json file in dir, in lexicographic path order for
// deterministic batch composition. Each file holds either a single record
// object or an array of record objects. Files or entries that are not valid
// record mappings are skipped, never fatal to the batch.
func LoadDir(dir string) ([]RawRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %q: %w", dir, err)
	}

	var records []RawRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		recs, err := loadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

func loadFile(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	switch doc := payload.(type) {
	case map[string]any:
		return []RawRecord{RawRecord(doc)}, nil
	case []any:
		records := make([]RawRecord, 0, len(doc))
		for _, item := range doc {
			if rec, ok := item.(map[string]any); ok {
				records = append(records, RawRecord(rec))
			}
		}
		return records, nil
	}
	return nil, fmt.Errorf("document is neither an object nor a list")
}

// LoadWithCorrections loads the raw records and, when correctedDir is set,
// overlays the matching corrected records by global_index (falling back to
// index). Corrected records without an original counterpart are appended as
// standalone records.
func LoadWithCorrections(inputDir, correctedDir string) ([]RawRecord, error) {
	originals, err := LoadDir(inputDir)
	if err != nil {
		return nil, err
	}
	if correctedDir == "" {
		return originals, nil
	}

	corrected, err := LoadDir(correctedDir)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]RawRecord, len(corrected))
	for _, rec := range corrected {
		if key, ok := recordKey(rec); ok {
			byKey[key] = rec
		}
	}

	matched := make(map[string]struct{}, len(byKey))
	out := make([]RawRecord, 0, len(originals))
	for _, orig := range originals {
		key, ok := recordKey(orig)
		if !ok {
			out = append(out, orig)
			continue
		}
		if corr, found := byKey[key]; found {
			out = append(out, MergeCorrected(orig, corr))
			matched[key] = struct{}{}
		} else {
			out = append(out, orig)
		}
	}

	for _, rec := range corrected {
		key, ok := recordKey(rec)
		if !ok {
			continue
		}
		if _, used := matched[key]; !used {
			out = append(out, rec)
		}
	}
	return out, nil
}

// recordKey derives the join key used to pair an original record with its
// corrected counterpart.
func recordKey(rec RawRecord) (string, bool) {
	for _, field := range []string{"global_index", "index"} {
		if v := coerceFloat(rec[field]); v != nil {
			return fmt.Sprintf("%s=%g", field, *v), true
		}
	}
	return "", false
}
