package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/mfletcher/nestegg/internal/models"
)

func TestHistoricalMetrics_ReferenceSeries(t *testing.T) {
	series := models.DefaultHistory()
	currentTotal := 491132.0

	m, err := HistoricalMetrics(series, currentTotal)
	if err != nil {
		t.Fatalf("HistoricalMetrics() error = %v", err)
	}

	if m.TotalSaved != 327219 {
		t.Errorf("totalSaved = %v, want 327219", m.TotalSaved)
	}
	if m.ActualGains != 491132-327219 {
		t.Errorf("actualGains = %v, want %v", m.ActualGains, 491132-327219)
	}

	wantGainsPct := (491132.0 - 327219.0) / 327219.0 * 100
	if math.Abs(m.GainsPercentage-wantGainsPct) > 0.01 {
		t.Errorf("gainsPercentage = %v, want ~%.1f", m.GainsPercentage, wantGainsPct)
	}

	wantCAGR := (math.Pow(491132.0/20000.0, 1.0/7.0) - 1) * 100
	if math.Abs(m.CAGR-wantCAGR) > 1e-9 {
		t.Errorf("cagr = %v, want %v", m.CAGR, wantCAGR)
	}

	if m.PeakYear != 2025 || m.PeakValue != 491132 {
		t.Errorf("peak = %v (%d), want 491132 (2025)", m.PeakValue, m.PeakYear)
	}
	if m.RecoveryFromPeak != 0 {
		t.Errorf("recoveryFromPeak = %v, want 0 at the peak", m.RecoveryFromPeak)
	}
}

func TestHistoricalMetrics_BelowPeak(t *testing.T) {
	series := models.DefaultHistory()

	// Live portfolio edited below the recorded peak.
	m, err := HistoricalMetrics(series, 400000)
	if err != nil {
		t.Fatalf("HistoricalMetrics() error = %v", err)
	}
	if m.RecoveryFromPeak >= 0 {
		t.Errorf("recoveryFromPeak = %v, want negative while below peak", m.RecoveryFromPeak)
	}
	want := (400000.0 - 491132.0) / 491132.0 * 100
	if math.Abs(m.RecoveryFromPeak-want) > 0.01 {
		t.Errorf("recoveryFromPeak = %v, want %v", m.RecoveryFromPeak, want)
	}
}

func TestHistoricalMetrics_PeakTieResolvesToFirst(t *testing.T) {
	series := []models.HistoricalEntry{
		{Year: 2020, NetWorth: 100, TotalSaved: 100, AnnualSavings: 100},
		{Year: 2021, NetWorth: 500, TotalSaved: 200, AnnualSavings: 100},
		{Year: 2022, NetWorth: 500, TotalSaved: 300, AnnualSavings: 100},
	}

	m, err := HistoricalMetrics(series, 450)
	if err != nil {
		t.Fatalf("HistoricalMetrics() error = %v", err)
	}
	if m.PeakYear != 2021 {
		t.Errorf("peakYear = %d, want 2021 (first maximal entry)", m.PeakYear)
	}
}

func TestHistoricalMetrics_InvalidInputs(t *testing.T) {
	valid := models.DefaultHistory()

	tests := []struct {
		name    string
		series  []models.HistoricalEntry
		current float64
	}{
		{"empty series", nil, 1000},
		{"negative current", valid, -1},
		{"NaN current", valid, math.NaN()},
		{
			"zero first-year savings",
			[]models.HistoricalEntry{
				{Year: 2020, AnnualSavings: 0},
				{Year: 2021, AnnualSavings: 100},
			},
			1000,
		},
		{
			"zero year span",
			[]models.HistoricalEntry{
				{Year: 2020, AnnualSavings: 100},
			},
			1000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HistoricalMetrics(tt.series, tt.current); !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("HistoricalMetrics() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
