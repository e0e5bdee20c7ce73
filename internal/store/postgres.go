package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aladelca/rental-finder/internal/ingest"
)

// Warehouse is the optional Postgres sink for deduplicated listings and run
// metadata. The core pipeline never depends on it.
type Warehouse struct {
	pool *pgxpool.Pool
}

// ConnectWarehouse opens a connection pool and verifies it with a ping.
func ConnectWarehouse(ctx context.Context, databaseURL string) (*Warehouse, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging db: %w", err)
	}
	return &Warehouse{pool: pool}, nil
}

// Close releases the underlying pool.
func (w *Warehouse) Close() {
	w.pool.Close()
}

// EnsureSchema creates the listings and pipeline_runs tables if missing.
func (w *Warehouse) EnsureSchema(ctx context.Context) error {
	_, err := w.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pipeline_runs (
			run_id       TEXT PRIMARY KEY,
			loaded       INT NOT NULL,
			reconciled   INT NOT NULL,
			deduplicated INT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS listings (
			id                   BIGSERIAL PRIMARY KEY,
			run_id               TEXT NOT NULL,
			listing_index        DOUBLE PRECISION,
			global_index         DOUBLE PRECISION,
			scraped_at           TEXT,
			title                TEXT,
			url                  TEXT,
			location             TEXT,
			has_location         BOOLEAN,
			district             TEXT,
			property_type        TEXT,
			price_raw            TEXT,
			price_numeric        DOUBLE PRECISION,
			currency             TEXT,
			has_price            BOOLEAN,
			price_per_sqm        DOUBLE PRECISION,
			area_raw             TEXT,
			area_numeric         DOUBLE PRECISION,
			bedrooms             DOUBLE PRECISION,
			bathrooms            DOUBLE PRECISION,
			has_parking          BOOLEAN,
			parking_count        DOUBLE PRECISION,
			has_pool             BOOLEAN,
			has_garden           BOOLEAN,
			has_balcony          BOOLEAN,
			has_elevator         BOOLEAN,
			has_security         BOOLEAN,
			has_gym              BOOLEAN,
			is_furnished         BOOLEAN,
			allows_pets          BOOLEAN,
			is_new               BOOLEAN,
			has_terrace          BOOLEAN,
			has_laundry          BOOLEAN,
			has_air_conditioning BOOLEAN,
			image_count          DOUBLE PRECISION,
			image_urls           TEXT[],
			page                 DOUBLE PRECISION,
			site_page            DOUBLE PRECISION,
			element_class        TEXT,
			element_tag          TEXT,
			data_completeness    DOUBLE PRECISION,
			feature_count        DOUBLE PRECISION,
			full_text            TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun records the stage counters of a pipeline run.
func (w *Warehouse) SaveRun(ctx context.Context, stats ingest.RunStats) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (run_id, loaded, reconciled, deduplicated) VALUES ($1, $2, $3, $4)`,
		stats.RunID, stats.Loaded, stats.Reconciled, stats.Deduplicated)
	if err != nil {
		return fmt.Errorf("save run %s: %w", stats.RunID, err)
	}
	return nil
}

var listingColumns = []string{
	"run_id", "listing_index", "global_index", "scraped_at", "title", "url",
	"location", "has_location", "district", "property_type",
	"price_raw", "price_numeric", "currency", "has_price", "price_per_sqm",
	"area_raw", "area_numeric", "bedrooms", "bathrooms",
	"has_parking", "parking_count", "has_pool", "has_garden", "has_balcony",
	"has_elevator", "has_security", "has_gym", "is_furnished", "allows_pets",
	"is_new", "has_terrace", "has_laundry", "has_air_conditioning",
	"image_count", "image_urls", "page", "site_page", "element_class", "element_tag",
	"data_completeness", "feature_count", "full_text",
}

// InsertListings bulk-loads the dataset for a run using COPY.
func (w *Warehouse) InsertListings(ctx context.Context, runID string, records []ingest.ListingRecord) (int64, error) {
	n, err := w.pool.CopyFrom(ctx,
		pgx.Identifier{"listings"},
		listingColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				runID, r.Index, r.GlobalIndex, r.ScrapedAt, r.Title, r.URL,
				r.Location, r.HasLocation, r.District, r.PropertyType,
				r.PriceRaw, r.PriceNumeric, r.Currency, r.HasPrice, r.PricePerSqm,
				r.AreaRaw, r.AreaNumeric, r.Bedrooms, r.Bathrooms,
				r.HasParking, r.ParkingCount, r.HasPool, r.HasGarden, r.HasBalcony,
				r.HasElevator, r.HasSecurity, r.HasGym, r.IsFurnished, r.AllowsPets,
				r.IsNew, r.HasTerrace, r.HasLaundry, r.HasAirConditioning,
				r.ImageCount, r.ImageURLs, r.Page, r.SitePage, r.ElementClass, r.ElementTag,
				r.DataCompleteness, r.FeatureCount, r.FullText,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy listings: %w", err)
	}
	return n, nil
}
