package calc

import (
	"fmt"
	"math"

	"github.com/mfletcher/nestegg/internal/models"
)

// HistoricalMetrics derives the multi-year statistics from the reference
// series and the caller's current total. currentTotal may differ from the
// series' last recorded net worth when the live portfolio has been edited
// since the series was recorded.
//
// CAGR is computed against the first year's annual savings over the span
// lastYear - firstYear; it is undefined (ErrInvalidInput) when the first
// year's savings is non-positive or the span is zero or negative.
func HistoricalMetrics(series []models.HistoricalEntry, currentTotal float64) (*models.HistoricalMetrics, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: historical series is empty", models.ErrInvalidInput)
	}
	if math.IsNaN(currentTotal) || math.IsInf(currentTotal, 0) || currentTotal < 0 {
		return nil, fmt.Errorf("%w: current total must be a non-negative number", models.ErrInvalidInput)
	}

	first := series[0]
	last := series[len(series)-1]

	yearsSpan := last.Year - first.Year
	if first.AnnualSavings <= 0 {
		return nil, fmt.Errorf("%w: first year's savings must be positive for CAGR", models.ErrInvalidInput)
	}
	if yearsSpan <= 0 {
		return nil, fmt.Errorf("%w: series must span at least one year for CAGR", models.ErrInvalidInput)
	}

	totalSaved := last.TotalSaved
	actualGains := currentTotal - totalSaved

	var gainsPct float64
	if totalSaved > 0 {
		gainsPct = actualGains / totalSaved * 100
	}

	cagr := (math.Pow(currentTotal/first.AnnualSavings, 1/float64(yearsSpan)) - 1) * 100

	// Peak: first maximal entry wins on ties.
	peak := series[0]
	for _, e := range series[1:] {
		if e.NetWorth > peak.NetWorth {
			peak = e
		}
	}

	var recovery float64
	if peak.NetWorth > 0 {
		recovery = (currentTotal - peak.NetWorth) / peak.NetWorth * 100
	}

	return &models.HistoricalMetrics{
		TotalSaved:       totalSaved,
		ActualGains:      actualGains,
		GainsPercentage:  gainsPct,
		CAGR:             cagr,
		PeakValue:        peak.NetWorth,
		PeakYear:         peak.Year,
		RecoveryFromPeak: recovery,
	}, nil
}
