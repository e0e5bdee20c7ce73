package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirOrderAndShapes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_batch.json", `[{"title": "second"}, {"title": "third"}]`)
	writeFile(t, dir, "a_single.json", `{"title": "first"}`)
	writeFile(t, dir, "c_broken.json", `{not json`)
	writeFile(t, dir, "d_scalar.json", `42`)
	writeFile(t, dir, "ignored.txt", `{"title": "not a json file"}`)

	records, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, w := range want {
		if records[i]["title"] != w {
			t.Errorf("record %d title = %v, want %q", i, records[i]["title"], w)
		}
	}
}

func TestLoadDirSkipsNonMappingEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mixed.json", `[{"title": "ok"}, "not a record", 7, {"title": "also ok"}]`)

	records, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestLoadWithCorrections(t *testing.T) {
	inputDir := t.TempDir()
	correctedDir := t.TempDir()

	writeFile(t, inputDir, "raw.json", `[
		{"global_index": 1, "title": "uno", "price_raw": "N/A"},
		{"global_index": 2, "title": "dos"}
	]`)
	writeFile(t, correctedDir, "corrected.json", `[
		{"global_index": 1, "price_raw": "S/ 2,500", "price_numeric": 2500},
		{"global_index": 9, "title": "huérfano"}
	]`)

	records, err := LoadWithCorrections(inputDir, correctedDir)
	if err != nil {
		t.Fatalf("LoadWithCorrections failed: %v", err)
	}

	// 2 originals (one merged) plus the orphan corrected record.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0]["price_raw"] != "S/ 2,500" {
		t.Errorf("merged price_raw = %v, want corrected value", records[0]["price_raw"])
	}
	if records[0]["title"] != "uno" {
		t.Errorf("merged title = %v, want original value", records[0]["title"])
	}
	if records[1]["title"] != "dos" {
		t.Errorf("record 1 = %v, want untouched original", records[1]["title"])
	}
	if records[2]["title"] != "huérfano" {
		t.Errorf("record 2 = %v, want appended orphan", records[2]["title"])
	}
}

func TestLoadWithCorrectionsNoOverlayDir(t *testing.T) {
	inputDir := t.TempDir()
	writeFile(t, inputDir, "raw.json", `{"title": "uno"}`)

	records, err := LoadWithCorrections(inputDir, "")
	if err != nil {
		t.Fatalf("LoadWithCorrections failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}
