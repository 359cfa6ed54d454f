package models

// HistoricalEntry is one fixed year of the net-worth history. Immutable
// reference data, not user-editable.
type HistoricalEntry struct {
	Year           int     `json:"year"`
	NetWorth       float64 `json:"net_worth"`
	TotalSaved     float64 `json:"total_saved"`
	AnnualSavings  float64 `json:"annual_savings"`
	MarketGain     float64 `json:"market_gain"`
	MarketGainPct  float64 `json:"market_gain_pct"`
}

// HistoricalMetrics carries the derived multi-year statistics.
type HistoricalMetrics struct {
	TotalSaved       float64 `json:"total_saved"`
	ActualGains      float64 `json:"actual_gains"`
	GainsPercentage  float64 `json:"gains_percentage"`
	CAGR             float64 `json:"cagr"`
	PeakValue        float64 `json:"peak_value"`
	PeakYear         int     `json:"peak_year"`
	RecoveryFromPeak float64 `json:"recovery_from_peak"`
}

// DefaultHistory returns the fixed reference series the dashboard charts
// are built from.
func DefaultHistory() []HistoricalEntry {
	return []HistoricalEntry{
		{Year: 2018, NetWorth: 18800, TotalSaved: 20000, AnnualSavings: 20000, MarketGain: -1200, MarketGainPct: -6.0},
		{Year: 2019, NetWorth: 50200, TotalSaved: 46000, AnnualSavings: 26000, MarketGain: 5400, MarketGainPct: 12.1},
		{Year: 2020, NetWorth: 91500, TotalSaved: 77500, AnnualSavings: 31500, MarketGain: 9800, MarketGainPct: 12.0},
		{Year: 2021, NetWorth: 151300, TotalSaved: 116000, AnnualSavings: 38500, MarketGain: 21300, MarketGainPct: 16.4},
		{Year: 2022, NetWorth: 166800, TotalSaved: 160200, AnnualSavings: 44200, MarketGain: -28700, MarketGainPct: -14.7},
		{Year: 2023, NetWorth: 252200, TotalSaved: 211000, AnnualSavings: 50800, MarketGain: 34600, MarketGainPct: 15.9},
		{Year: 2024, NetWorth: 369919, TotalSaved: 267219, AnnualSavings: 56219, MarketGain: 61500, MarketGainPct: 19.9},
		{Year: 2025, NetWorth: 491132, TotalSaved: 327219, AnnualSavings: 60000, MarketGain: 61213, MarketGainPct: 14.2},
	}
}
