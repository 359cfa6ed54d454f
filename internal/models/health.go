package models

// IssueSeverity ranks a health issue. Urgent issues sort before watch-level
// ones.
type IssueSeverity string

const (
	SeverityUrgent IssueSeverity = "urgent"
	SeverityWatch  IssueSeverity = "watch"
)

// Issue categories emitted by the allocation health check.
const (
	CategoryCashDrag      = "cash_drag"
	CategoryConcentration = "concentration"
	CategoryCryptoHeavy   = "crypto_heavy"
)

// HealthIssue is a single allocation rule violation. CorrectiveAmount is the
// base-currency amount to move out of the offending bucket to reach the
// rule's reference point. Issues are sorted ascending by Priority.
type HealthIssue struct {
	Severity         IssueSeverity `json:"severity"`
	Category         string        `json:"category"`
	Bucket           Bucket        `json:"bucket"`
	Message          string        `json:"message"`
	CorrectiveAmount float64       `json:"corrective_amount"`
	Priority         int           `json:"priority"`
}

// AllocationThresholds carries the maximum allocation percentages per risk
// category plus the hedge corrective target. Read-only at runtime; always
// passed in explicitly so tests can substitute arbitrary configurations.
type AllocationThresholds struct {
	HedgeMaxPct    float64 `json:"hedge_max_pct"`
	GrowthMaxPct   float64 `json:"growth_max_pct"`
	CryptoMaxPct   float64 `json:"crypto_max_pct"`
	HedgeTargetPct float64 `json:"hedge_target_pct"`
}
