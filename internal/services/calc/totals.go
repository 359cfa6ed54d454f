// Package calc provides the pure portfolio calculation functions. Every
// function is a stateless mapping from explicit inputs to outputs or an
// error; configuration is always passed in, never read from package state.
package calc

import (
	"fmt"
	"math"

	"github.com/mfletcher/nestegg/internal/models"
)

// Total sums the four bucket values. Fails with ErrInvalidInput if any
// bucket is NaN, infinite, or negative; a silent wrong total is worse than
// a visible failure.
func Total(p *models.Portfolio) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: portfolio is nil", models.ErrInvalidInput)
	}

	var total float64
	for _, b := range models.Buckets {
		v := p.BucketValue(b)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: bucket %q is not a finite number", models.ErrInvalidInput, b)
		}
		if v < 0 {
			return 0, fmt.Errorf("%w: bucket %q is negative", models.ErrInvalidInput, b)
		}
		total += v
	}
	return total, nil
}

// Allocations returns each bucket's percentage of the total. A zero total
// yields zero for every bucket rather than dividing by zero.
func Allocations(p *models.Portfolio) (models.Allocations, error) {
	total, err := Total(p)
	if err != nil {
		return models.Allocations{}, err
	}
	if total == 0 {
		return models.Allocations{}, nil
	}

	return models.Allocations{
		Core:   p.Core / total * 100,
		Growth: p.Growth / total * 100,
		Crypto: p.Crypto / total * 100,
		Hedge:  p.Hedge / total * 100,
	}, nil
}
