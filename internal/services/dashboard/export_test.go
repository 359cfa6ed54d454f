package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mfletcher/nestegg/internal/models"
)

func TestExport_BundleShape(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()
	ctx := context.Background()

	p := &models.Portfolio{Core: 280000, Growth: 35000, Crypto: 60000, Hedge: 75000, MonthlySavings: 5000, Currency: "USD"}
	if err := svc.SavePortfolio(ctx, p); err != nil {
		t.Fatalf("SavePortfolio() error = %v", err)
	}

	data, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var bundle models.ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("export document is not valid JSON: %v", err)
	}
	if bundle.AppIdentifier != models.AppIdentifier {
		t.Errorf("app_identifier = %q, want %q", bundle.AppIdentifier, models.AppIdentifier)
	}
	if bundle.Version == "" {
		t.Error("export bundle missing version")
	}
	if bundle.Timestamp.IsZero() {
		t.Error("export bundle missing timestamp")
	}
	if bundle.Portfolio == nil || bundle.Portfolio.Core != 280000 {
		t.Errorf("export bundle portfolio = %+v", bundle.Portfolio)
	}
	if bundle.Settings == nil {
		t.Error("export bundle missing settings")
	}
}

func TestImport_RoundTrip(t *testing.T) {
	srcStore := newMemStore()
	src := newTestService(srcStore)
	defer src.Close()
	ctx := context.Background()

	p := &models.Portfolio{Core: 1000, Growth: 2000, Crypto: 3000, Hedge: 4000, MonthlySavings: 500, Currency: "EUR"}
	if err := src.SavePortfolio(ctx, p); err != nil {
		t.Fatalf("SavePortfolio() error = %v", err)
	}
	if err := src.SaveSettings(ctx, &models.Settings{FITarget: 2000000}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	data, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst := newTestService(newMemStore())
	defer dst.Close()

	bundle, err := dst.Import(ctx, data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if bundle.Portfolio == nil || bundle.Settings == nil {
		t.Fatal("imported bundle lost sections")
	}

	got, err := dst.GetPortfolio(ctx)
	if err != nil {
		t.Fatalf("GetPortfolio() after import error = %v", err)
	}
	if got.Core != 1000 || got.Growth != 2000 || got.Crypto != 3000 || got.Hedge != 4000 {
		t.Errorf("imported portfolio = %+v", got)
	}
	if got.Currency != "EUR" {
		t.Errorf("imported currency = %q, want EUR", got.Currency)
	}

	settings, err := dst.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings() after import error = %v", err)
	}
	if settings.FITarget != 2000000 {
		t.Errorf("imported FITarget = %v, want 2000000", settings.FITarget)
	}
}

func TestImport_RejectsGarbage(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	_, err := svc.Import(context.Background(), []byte("not a bundle"))
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Import(garbage) error = %v, want ErrInvalidInput", err)
	}
}

func TestImport_RejectsEmptyBundle(t *testing.T) {
	svc := newTestService(newMemStore())
	defer svc.Close()

	_, err := svc.Import(context.Background(), []byte(`{"version": "1.0.0"}`))
	if !errors.Is(err, models.ErrMissingField) {
		t.Errorf("Import(empty bundle) error = %v, want ErrMissingField", err)
	}
}

func TestImport_RejectsInvalidPortfolio(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	defer svc.Close()

	doc := []byte(`{"portfolio": {"core": -5, "growth": 0, "crypto": 0, "hedge": 0}}`)
	_, err := svc.Import(context.Background(), doc)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Import(negative bucket) error = %v, want ErrInvalidInput", err)
	}
	if _, ok := store.data[portfolioKey]; ok {
		t.Error("rejected import still wrote the portfolio")
	}
}
