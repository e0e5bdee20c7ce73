package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/aladelca/rental-finder/internal/config"
	"github.com/aladelca/rental-finder/internal/ingest"
	"github.com/aladelca/rental-finder/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a pipeline.yaml overriding the embedded defaults")
	inputDir := flag.String("input-dir", "", "directory with cleaned JSON files (overrides config)")
	correctedDir := flag.String("corrected-dir", "", "directory with corrected JSON overlays (overrides config)")
	outputDir := flag.String("output-dir", "", "directory for the dataset and analysis output (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system env vars")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *correctedDir != "" {
		cfg.Input.CorrectedDir = *correctedDir
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	records, err := ingest.LoadWithCorrections(cfg.Input.Dir, cfg.Input.CorrectedDir)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	pipeline := ingest.NewPipeline(ingest.ReconcileConfig{
		ReferenceCurrency: cfg.Reconcile.ReferenceCurrency,
		ReferenceMarker:   cfg.Reconcile.ReferenceMarker,
		USDMarker:         cfg.Reconcile.USDMarker,
		ExchangeRate:      cfg.Reconcile.ExchangeRate,
		MinPrice:          cfg.Reconcile.MinPrice,
		MaxPrice:          cfg.Reconcile.MaxPrice,
		SegmentSeparator:  cfg.Reconcile.SegmentSeparator,
	})

	dataset, report, stats, err := pipeline.Run(records)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	datasetPath, err := store.WriteDataset(cfg.Output.Dir, dataset)
	if err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("Dataset written to: %s", datasetPath)

	analysisDir := filepath.Join(cfg.Output.Dir, cfg.Output.AnalysisSubdir)
	reportPath, err := store.SaveProfile(analysisDir, report)
	if err != nil {
		log.Fatalf("Failed to save profile report: %v", err)
	}
	log.Printf("Profile report saved to: %s", reportPath)

	if cfg.Database.URL != "" {
		if err := exportToWarehouse(cfg.Database.URL, stats, dataset); err != nil {
			log.Fatalf("Warehouse export failed: %v", err)
		}
	}
}

func exportToWarehouse(databaseURL string, stats ingest.RunStats, dataset []ingest.ListingRecord) error {
	ctx := context.Background()
	wh, err := store.ConnectWarehouse(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer wh.Close()

	if err := wh.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := wh.SaveRun(ctx, stats); err != nil {
		return err
	}
	n, err := wh.InsertListings(ctx, stats.RunID, dataset)
	if err != nil {
		return err
	}
	log.Printf("Exported %d listings to warehouse (run %s)", n, stats.RunID)
	return nil
}
