// Package models defines data structures for nestegg
package models

import "errors"

// Sentinel errors for the calculation and persistence surfaces. Calculators
// fail fast with these; callers decide whether to propagate or degrade.
var (
	// ErrInvalidInput marks a non-numeric, negative, NaN or otherwise
	// uncomputable input to a calculation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedCurrency marks a conversion request for a currency code
	// absent from the rate table.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrMissingField marks a required portfolio field absent from a
	// decoded document.
	ErrMissingField = errors.New("missing required field")

	// ErrOutOfRange marks a value above the sanity ceiling, treated as an
	// implausible user edit rather than real data.
	ErrOutOfRange = errors.New("value out of range")
)
