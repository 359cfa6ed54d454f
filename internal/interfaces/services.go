package interfaces

import (
	"context"

	"github.com/mfletcher/nestegg/internal/models"
)

// DashboardService orchestrates portfolio load/save, health evaluation,
// snapshots, and import/export.
type DashboardService interface {
	// GetPortfolio loads the current portfolio, falling back to the backup
	// snapshot and then to defaults. Never fails outright on a bad read.
	GetPortfolio(ctx context.Context) (*models.Portfolio, error)

	// SavePortfolio validates and persists the portfolio wholesale, keeping
	// the prior record as a backup snapshot.
	SavePortfolio(ctx context.Context, p *models.Portfolio) error

	// QueueSave schedules a debounced save. A later call supersedes and
	// restarts the delay; at most one write is pending at a time.
	QueueSave(p *models.Portfolio)

	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, s *models.Settings) error

	// Snapshot assembles totals, allocations, health issues, FI progress and
	// historical metrics for the current portfolio.
	Snapshot(ctx context.Context) (*models.DashboardSnapshot, error)

	// Export produces the pretty-printed bundle document.
	Export(ctx context.Context) ([]byte, error)

	// Import parses a bundle and applies its portfolio and settings through
	// the same validation as a manual edit. Either may be absent.
	Import(ctx context.Context, data []byte) (*models.ExportBundle, error)

	// History returns the fixed reference series.
	History() []models.HistoricalEntry

	Close()
}

// CurrencyConverter is the single conversion and formatting entry point. No
// other component may hold a parallel rate constant.
type CurrencyConverter interface {
	// Convert applies the rate table and rounds to the nearest integer unit
	// before returning. Downstream code must not re-round or re-scale.
	Convert(amount float64, target string) (float64, error)

	// Format renders amount with the currency's symbol and thousands
	// separators; unknown codes fall back to the base currency's symbol.
	Format(amount float64, code string) string

	// Base returns the base currency code.
	Base() string
}
