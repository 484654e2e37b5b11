package domain

import (
	"fmt"
	"strings"
)

// CurrencyCode is one of the two currencies the store can operate in.
type CurrencyCode string

const (
	BGN CurrencyCode = "BGN" // Bulgarian lev, the pre-euro store currency
	EUR CurrencyCode = "EUR"
)

// Labels rendered next to amounts.
const (
	LevLabel  = "лв."
	EuroLabel = "€"
)

// ParseCurrencyCode accepts BGN or EUR in any case. Any other code is unsupported
// and disables dual pricing for the store.
func ParseCurrencyCode(code string) (CurrencyCode, error) {
	switch CurrencyCode(strings.ToUpper(strings.TrimSpace(code))) {
	case BGN:
		return BGN, nil
	case EUR:
		return EUR, nil
	}
	return "", fmt.Errorf("unsupported currency %q", code)
}

// Other returns the counterpart currency.
func (c CurrencyCode) Other() CurrencyCode {
	if c == BGN {
		return EUR
	}
	return BGN
}

// Label returns the symbol shown after amounts in this currency.
func (c CurrencyCode) Label() string {
	if c == BGN {
		return LevLabel
	}
	return EuroLabel
}

// RoundingPolicy controls euro to lev rounding.
type RoundingPolicy string

const (
	RoundingExact RoundingPolicy = "exact"
	RoundingSmart RoundingPolicy = "smart"
)

// Position places the secondary amount relative to the primary one.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// Format selects the delimiter wrapped around the secondary amount.
type Format string

const (
	FormatBrackets Format = "brackets"
	FormatDivider  Format = "divider"
)

// DisplayOptions only affect string composition.
type DisplayOptions struct {
	Position Position `json:"position" validate:"required,oneof=left right"`
	Format   Format   `json:"format" validate:"required,oneof=brackets divider"`
}

// DefaultDisplayOptions mirrors the installation defaults.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{Position: PositionRight, Format: FormatBrackets}
}
