package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Bucket names the four asset allocation categories.
type Bucket string

const (
	BucketCore   Bucket = "core"
	BucketGrowth Bucket = "growth"
	BucketCrypto Bucket = "crypto"
	BucketHedge  Bucket = "hedge"
)

// Buckets lists the four buckets in canonical display order.
var Buckets = []Bucket{BucketCore, BucketGrowth, BucketCrypto, BucketHedge}

// MaxBucketValue is the sanity ceiling for a single bucket edit. Values
// above this are rejected as implausible user error.
const MaxBucketValue = 10_000_000

// Portfolio is the user's allocation across the four asset buckets plus the
// monthly savings target and display currency. It is always replaced
// wholesale after validation, never patched in place.
type Portfolio struct {
	Core           float64   `json:"core"`
	Growth         float64   `json:"growth"`
	Crypto         float64   `json:"crypto"`
	Hedge          float64   `json:"hedge"`
	MonthlySavings float64   `json:"monthly_savings"`
	Currency       string    `json:"currency"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// BucketValue returns the value of the named bucket.
func (p *Portfolio) BucketValue(b Bucket) float64 {
	switch b {
	case BucketCore:
		return p.Core
	case BucketGrowth:
		return p.Growth
	case BucketCrypto:
		return p.Crypto
	case BucketHedge:
		return p.Hedge
	}
	return 0
}

// Validate checks every bucket value is a finite, non-negative number below
// the sanity ceiling. Returns ErrInvalidInput or ErrOutOfRange wrapped with
// the offending bucket name.
func (p *Portfolio) Validate() error {
	for _, b := range Buckets {
		v := p.BucketValue(b)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bucket %q is not a finite number", ErrInvalidInput, b)
		}
		if v < 0 {
			return fmt.Errorf("%w: bucket %q is negative", ErrInvalidInput, b)
		}
		if v > MaxBucketValue {
			return fmt.Errorf("%w: bucket %q exceeds %d", ErrOutOfRange, b, MaxBucketValue)
		}
	}
	if math.IsNaN(p.MonthlySavings) || math.IsInf(p.MonthlySavings, 0) || p.MonthlySavings < 0 {
		return fmt.Errorf("%w: monthly_savings must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// CheckPortfolioShape verifies a raw JSON document carries all four bucket
// fields. Used by the load path to decide whether a stored record is intact
// before trusting it; a failure triggers the backup fallback.
func CheckPortfolioShape(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: portfolio document is not an object", ErrInvalidInput)
	}
	for _, b := range Buckets {
		if _, ok := fields[string(b)]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingField, b)
		}
	}
	return nil
}

// DefaultPortfolio returns the starting portfolio used when nothing has
// been persisted yet.
func DefaultPortfolio() *Portfolio {
	return &Portfolio{
		Core:           280000,
		Growth:         35000,
		Crypto:         60000,
		Hedge:          75000,
		MonthlySavings: 5000,
		Currency:       "USD",
	}
}
