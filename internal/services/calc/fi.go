package calc

import (
	"fmt"
	"math"

	"github.com/mfletcher/nestegg/internal/models"
)

// FIAssumptions carries the fixed rates used by the FI projection.
type FIAssumptions struct {
	WithdrawalRate float64 // safe annual withdrawal fraction, e.g. 0.04
	GrowthRate     float64 // assumed annual growth, e.g. 0.07
}

// FIProgress reports progress toward the financial-independence target.
// Percentage is clamped to [0,100] and Remaining to >= 0. YearsToTarget is
// remaining / (current * growthRate), a rough linear projection rather than a
// compounding solve; treat it as an approximation.
func FIProgress(current, target float64, a FIAssumptions) (*models.FIProgress, error) {
	if math.IsNaN(current) || math.IsInf(current, 0) || current < 0 {
		return nil, fmt.Errorf("%w: current total must be a non-negative number", models.ErrInvalidInput)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return nil, fmt.Errorf("%w: FI target must be positive", models.ErrInvalidInput)
	}

	pct := math.Min(current/target*100, 100)
	remaining := math.Max(target-current, 0)

	var years float64
	if remaining > 0 && current > 0 && a.GrowthRate > 0 {
		years = remaining / (current * a.GrowthRate)
	}

	return &models.FIProgress{
		Percentage:           pct,
		Remaining:            remaining,
		MonthlyPassiveIncome: current * a.WithdrawalRate / 12,
		YearsToTarget:        years,
	}, nil
}
