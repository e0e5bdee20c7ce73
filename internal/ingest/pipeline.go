package ingest

import (
	"errors"
	"log"

	"github.com/google/uuid"
)

// ErrNoRecords is returned when a run finds nothing to process; the pipeline
// halts before writing any output.
var ErrNoRecords = errors.New("no input records found")

// RunStats counts rows entering and leaving each stage of a run. Dropped rows
// are an expected part of reconciliation and deduplication, so the counts are
// reported for observability rather than logged as errors.
type RunStats struct {
	RunID        string `json:"run_id"`
	Loaded       int    `json:"loaded"`
	Reconciled   int    `json:"reconciled"`
	Deduplicated int    `json:"deduplicated"`
}

// Pipeline runs the normalization → reconciliation → deduplication →
// profiling chain over an in-memory batch. Each stage consumes the complete
// output of the previous one; a single run owns its dataset exclusively.
type Pipeline struct {
	Reconciler ReconcileConfig
	RunID      string
}

// NewPipeline creates a pipeline with a fresh run ID.
func NewPipeline(cfg ReconcileConfig) *Pipeline {
	return &Pipeline{Reconciler: cfg, RunID: uuid.NewString()}
}

// Run transforms raw records into the final deduplicated dataset and its
// profile. It fails only when there is nothing to process; per-row problems
// degrade to dropped rows or nulled fields.
func (p *Pipeline) Run(records []RawRecord) ([]ListingRecord, *ProfileReport, RunStats, error) {
	stats := RunStats{RunID: p.RunID, Loaded: len(records)}
	if len(records) == 0 {
		return nil, nil, stats, ErrNoRecords
	}
	log.Printf("[%s] Loaded %d raw records", p.RunID, len(records))

	dataset := Normalize(records)
	log.Printf("[%s] Normalized %d rows onto %d columns", p.RunID, len(dataset), len(columns))

	dataset = p.Reconciler.Reconcile(dataset)
	stats.Reconciled = len(dataset)
	log.Printf("[%s] Price reconciliation kept %d/%d rows", p.RunID, len(dataset), stats.Loaded)

	dataset = Deduplicate(dataset)
	stats.Deduplicated = len(dataset)
	log.Printf("[%s] Dedup: %d -> %d rows", p.RunID, stats.Reconciled, stats.Deduplicated)

	report := Profile(dataset)
	return dataset, report, stats, nil
}
