package calc

import (
	"fmt"
	"sort"

	"github.com/mfletcher/nestegg/internal/models"
)

// EvaluateHealth checks the allocation percentages against the configured
// ceilings and returns the violations sorted ascending by priority. An empty
// result means the allocation is healthy.
//
// Three fixed rules:
//   - hedge over HedgeMaxPct: urgent cash_drag, corrective amount targets
//     HedgeTargetPct (alerts at one cutoff, corrects to a lower one; do not
//     collapse the two values into one)
//   - growth over GrowthMaxPct: watch-level concentration
//   - crypto over CryptoMaxPct: watch-level crypto_heavy
//
// The corrective amount is (actualPct - referencePct) * total / 100, the
// base-currency amount to move out of the bucket.
func EvaluateHealth(allocs models.Allocations, total float64, t models.AllocationThresholds) []models.HealthIssue {
	var issues []models.HealthIssue

	if allocs.Hedge > t.HedgeMaxPct {
		excess := (allocs.Hedge - t.HedgeTargetPct) * total / 100
		issues = append(issues, models.HealthIssue{
			Severity: models.SeverityUrgent,
			Category: models.CategoryCashDrag,
			Bucket:   models.BucketHedge,
			Message: fmt.Sprintf("Hedge allocation %.1f%% exceeds %.1f%% ceiling, move %.0f to reach the %.1f%% target",
				allocs.Hedge, t.HedgeMaxPct, excess, t.HedgeTargetPct),
			CorrectiveAmount: excess,
			Priority:         1,
		})
	}

	if allocs.Growth > t.GrowthMaxPct {
		excess := (allocs.Growth - t.GrowthMaxPct) * total / 100
		issues = append(issues, models.HealthIssue{
			Severity: models.SeverityWatch,
			Category: models.CategoryConcentration,
			Bucket:   models.BucketGrowth,
			Message: fmt.Sprintf("Growth allocation %.1f%% exceeds %.1f%% ceiling, trim %.0f",
				allocs.Growth, t.GrowthMaxPct, excess),
			CorrectiveAmount: excess,
			Priority:         2,
		})
	}

	if allocs.Crypto > t.CryptoMaxPct {
		excess := (allocs.Crypto - t.CryptoMaxPct) * total / 100
		issues = append(issues, models.HealthIssue{
			Severity: models.SeverityWatch,
			Category: models.CategoryCryptoHeavy,
			Bucket:   models.BucketCrypto,
			Message: fmt.Sprintf("Crypto allocation %.1f%% exceeds %.1f%% ceiling, trim %.0f",
				allocs.Crypto, t.CryptoMaxPct, excess),
			CorrectiveAmount: excess,
			Priority:         2,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Priority < issues[j].Priority
	})

	return issues
}
