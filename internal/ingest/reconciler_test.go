package ingest

import (
	"math"
	"testing"
)

func TestReconcileRecordCurrencyInference(t *testing.T) {
	cfg := DefaultReconcileConfig()

	tests := []struct {
		name      string
		priceRaw  string
		currency  *string
		wantKeep  bool
		wantPrice float64
	}{
		{
			name:      "soles marker implies reference currency",
			priceRaw:  "S/ 9,990",
			wantKeep:  true,
			wantPrice: 9990,
		},
		{
			name:      "usd marker converts at fixed rate",
			priceRaw:  "USD 1,400,000",
			wantKeep:  true,
			wantPrice: 1400 * 3.8,
		},
		{
			name:      "soles marker wins over usd marker",
			priceRaw:  "S/ 2,500 USD",
			wantKeep:  true,
			wantPrice: 2500,
		},
		{
			name:      "pre-existing usd currency converts without marker",
			priceRaw:  "1,500",
			currency:  strPtr("USD"),
			wantKeep:  true,
			wantPrice: 1500 * 3.8,
		},
		{
			name:      "no marker keeps parsed value unconverted",
			priceRaw:  "2,000",
			wantKeep:  true,
			wantPrice: 2000,
		},
		{
			name:     "unparseable price is dropped",
			priceRaw: "Consultar precio",
			wantKeep: false,
		},
		{
			name:      "multi-segment raw uses first segment only",
			priceRaw:  "S/ 9,990 · 3 dorms · 2 baños",
			wantKeep:  true,
			wantPrice: 9990,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ListingRecord{PriceRaw: strPtr(tt.priceRaw), Currency: tt.currency}
			keep := cfg.ReconcileRecord(&rec)
			if keep != tt.wantKeep {
				t.Fatalf("keep = %v, want %v", keep, tt.wantKeep)
			}
			if !tt.wantKeep {
				return
			}
			if rec.PriceNumeric == nil || *rec.PriceNumeric != tt.wantPrice {
				t.Errorf("price = %v, want %v", rec.PriceNumeric, tt.wantPrice)
			}
			if rec.Currency == nil || *rec.Currency != cfg.ReferenceCurrency {
				t.Errorf("currency = %v, want %q", rec.Currency, cfg.ReferenceCurrency)
			}
		})
	}
}

func TestReconcileRecordPlausibilityBounds(t *testing.T) {
	cfg := DefaultReconcileConfig()

	tests := []struct {
		price string
		keep  bool
	}{
		{price: "10", keep: false},   // exclusive lower bound
		{price: "10.5", keep: true},
		{price: "90000", keep: true}, // inclusive upper bound
		{price: "90001", keep: false},
		{price: "0", keep: false},
		{price: "-50", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			rec := ListingRecord{PriceRaw: strPtr("S/ " + tt.price)}
			if got := cfg.ReconcileRecord(&rec); got != tt.keep {
				t.Errorf("keep = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestReconcileRecordPricePerSqm(t *testing.T) {
	cfg := DefaultReconcileConfig()

	t.Run("recomputed from usable area", func(t *testing.T) {
		rec := ListingRecord{PriceRaw: strPtr("S/ 9,990"), AreaNumeric: floatPtr(50)}
		if !cfg.ReconcileRecord(&rec) {
			t.Fatal("expected row to survive")
		}
		if rec.PricePerSqm == nil || math.Abs(*rec.PricePerSqm-199.8) > 1e-9 {
			t.Errorf("price_per_sqm = %v, want 199.8", rec.PricePerSqm)
		}
	})

	t.Run("nulled when area is unknown", func(t *testing.T) {
		rec := ListingRecord{PriceRaw: strPtr("S/ 9,990"), PricePerSqm: floatPtr(123)}
		if !cfg.ReconcileRecord(&rec) {
			t.Fatal("expected row to survive")
		}
		if rec.PricePerSqm != nil {
			t.Errorf("price_per_sqm = %v, want nil", *rec.PricePerSqm)
		}
	})

	t.Run("nulled when area is zero", func(t *testing.T) {
		rec := ListingRecord{PriceRaw: strPtr("S/ 9,990"), AreaNumeric: floatPtr(0)}
		if !cfg.ReconcileRecord(&rec) {
			t.Fatal("expected row to survive")
		}
		if rec.PricePerSqm != nil {
			t.Errorf("price_per_sqm = %v, want nil", *rec.PricePerSqm)
		}
	})
}

func TestReconcileBatchInvariants(t *testing.T) {
	cfg := DefaultReconcileConfig()
	records := []ListingRecord{
		{PriceRaw: strPtr("S/ 9,990"), AreaNumeric: floatPtr(50)},
		{PriceRaw: strPtr("USD 1,400,000")},
		{PriceRaw: strPtr("S/ 5")},
		{PriceRaw: nil},
		{PriceRaw: strPtr("S/ 950,000")}, // truncation rule reads this as 950
	}

	out := cfg.Reconcile(records)
	for i, rec := range out {
		if rec.PriceNumeric == nil {
			t.Fatalf("row %d has nil price after reconciliation", i)
		}
		p := *rec.PriceNumeric
		if !(p > cfg.MinPrice && p <= cfg.MaxPrice) {
			t.Errorf("row %d price %v outside (%v, %v]", i, p, cfg.MinPrice, cfg.MaxPrice)
		}
		if rec.Currency == nil || *rec.Currency != cfg.ReferenceCurrency {
			t.Errorf("row %d currency %v, want %q", i, rec.Currency, cfg.ReferenceCurrency)
		}
	}
	if len(out) != 3 {
		t.Errorf("expected 3 surviving rows, got %d", len(out))
	}
}
