package models

import (
	"fmt"
	"math"
	"time"
)

// Settings holds the user-editable dashboard preferences persisted beside
// the portfolio. Zero values mean "use the configured default".
type Settings struct {
	FITarget        float64   `json:"fi_target,omitempty"`
	DisplayCurrency string    `json:"display_currency,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Validate rejects non-finite or negative values.
func (s *Settings) Validate() error {
	if math.IsNaN(s.FITarget) || math.IsInf(s.FITarget, 0) || s.FITarget < 0 {
		return fmt.Errorf("%w: fi_target must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// ExportBundle is the single JSON document produced by export and consumed
// by import. Portfolio and Settings may each be absent on import.
type ExportBundle struct {
	Portfolio     *Portfolio `json:"portfolio,omitempty"`
	Settings      *Settings  `json:"settings,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	Version       string     `json:"version"`
	AppIdentifier string     `json:"app_identifier"`
}

// AppIdentifier tags export bundles produced by this application.
const AppIdentifier = "nestegg"

// Allocations holds the percentage-of-total per bucket.
type Allocations struct {
	Core   float64 `json:"core"`
	Growth float64 `json:"growth"`
	Crypto float64 `json:"crypto"`
	Hedge  float64 `json:"hedge"`
}

// Pct returns the allocation percentage for the named bucket.
func (a Allocations) Pct(b Bucket) float64 {
	switch b {
	case BucketCore:
		return a.Core
	case BucketGrowth:
		return a.Growth
	case BucketCrypto:
		return a.Crypto
	case BucketHedge:
		return a.Hedge
	}
	return 0
}

// FIProgress is the financial-independence progress report. YearsToTarget
// is a rough linear projection at the assumed growth rate, an
// approximation, not a forecast.
type FIProgress struct {
	Percentage           float64 `json:"percentage"`
	Remaining            float64 `json:"remaining"`
	MonthlyPassiveIncome float64 `json:"monthly_passive_income"`
	YearsToTarget        float64 `json:"years_to_target"`
}

// DashboardSnapshot bundles everything the dashboard front end needs in a
// single response.
type DashboardSnapshot struct {
	Portfolio   *Portfolio         `json:"portfolio"`
	Total       float64            `json:"total"`
	Allocations Allocations        `json:"allocations"`
	Issues      []HealthIssue      `json:"issues"`
	FI          *FIProgress        `json:"fi"`
	History     *HistoricalMetrics `json:"history"`
	GeneratedAt time.Time          `json:"generated_at"`
}
