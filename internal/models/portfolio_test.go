package models

import (
	"errors"
	"math"
	"testing"
)

func TestPortfolioValidate(t *testing.T) {
	tests := []struct {
		name      string
		portfolio Portfolio
		wantErr   error
	}{
		{"valid", Portfolio{Core: 100, Growth: 50, Crypto: 25, Hedge: 10, MonthlySavings: 5}, nil},
		{"all zero", Portfolio{}, nil},
		{"at ceiling", Portfolio{Core: MaxBucketValue}, nil},
		{"negative core", Portfolio{Core: -1}, ErrInvalidInput},
		{"negative hedge", Portfolio{Hedge: -0.01}, ErrInvalidInput},
		{"NaN growth", Portfolio{Growth: math.NaN()}, ErrInvalidInput},
		{"Inf crypto", Portfolio{Crypto: math.Inf(1)}, ErrInvalidInput},
		{"above ceiling", Portfolio{Core: MaxBucketValue + 1}, ErrOutOfRange},
		{"negative savings", Portfolio{MonthlySavings: -5}, ErrInvalidInput},
		{"NaN savings", Portfolio{MonthlySavings: math.NaN()}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.portfolio.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckPortfolioShape(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"complete", `{"core": 1, "growth": 2, "crypto": 3, "hedge": 4}`, nil},
		{"extra fields ok", `{"core": 1, "growth": 2, "crypto": 3, "hedge": 4, "currency": "USD"}`, nil},
		{"missing hedge", `{"core": 1, "growth": 2, "crypto": 3}`, ErrMissingField},
		{"missing core", `{"growth": 2, "crypto": 3, "hedge": 4}`, ErrMissingField},
		{"empty object", `{}`, ErrMissingField},
		{"not an object", `[1, 2, 3]`, ErrInvalidInput},
		{"not json", `hello`, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPortfolioShape([]byte(tt.doc))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckPortfolioShape() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckPortfolioShape() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBucketValue(t *testing.T) {
	p := Portfolio{Core: 1, Growth: 2, Crypto: 3, Hedge: 4}
	for i, b := range Buckets {
		if got := p.BucketValue(b); got != float64(i+1) {
			t.Errorf("BucketValue(%q) = %v, want %v", b, got, i+1)
		}
	}
	if got := p.BucketValue(Bucket("bonds")); got != 0 {
		t.Errorf("BucketValue(unknown) = %v, want 0", got)
	}
}

func TestDefaultPortfolio(t *testing.T) {
	p := DefaultPortfolio()
	if err := p.Validate(); err != nil {
		t.Fatalf("default portfolio fails validation: %v", err)
	}
	if p.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", p.Currency)
	}
	if total := p.Core + p.Growth + p.Crypto + p.Hedge; total != 450000 {
		t.Errorf("default total = %v, want 450000", total)
	}
}
