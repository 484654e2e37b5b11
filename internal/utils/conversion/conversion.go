package conversion

import (
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateString is the fixed BGN per EUR conversion rate.
const RateString = "1.95583"

var rate = decimal.RequireFromString(RateString)

// snapTolerance is the distance from a whole lev under which smart rounding snaps.
var snapTolerance = decimal.RequireFromString("0.015")

// LevFilter may inspect or replace the final lev amount of EuroToLev.
// rounded is the value after rounding (and snapping), input the euro amount,
// raw the unrounded product.
type LevFilter func(rounded, input, raw decimal.Decimal) decimal.Decimal

// Rate returns the fixed BGN per EUR conversion rate.
func Rate() decimal.Decimal {
	return rate
}

// Engine converts between lev and euro at the fixed rate.
type Engine struct {
	levFilter LevFilter
}

// Option configures an Engine.
type Option func(*Engine)

// WithLevFilter installs a hook applied to every EuroToLev result.
func WithLevFilter(f LevFilter) Option {
	return func(e *Engine) {
		e.levFilter = f
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LevToEuro divides by the rate and rounds half away from zero to cents.
func (e *Engine) LevToEuro(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(rate).Round(2)
}

// EuroToLev multiplies by the rate and rounds to cents. With RoundingSmart an
// amount within 0.015 of a whole lev is snapped to it.
func (e *Engine) EuroToLev(amount decimal.Decimal, policy domain.RoundingPolicy) decimal.Decimal {
	raw := amount.Mul(rate)
	rounded := raw.Round(2)

	if policy == domain.RoundingSmart {
		nearest := rounded.Round(0)
		if rounded.Sub(nearest).Abs().LessThan(snapTolerance) {
			rounded = nearest
		}
	}

	if e.levFilter != nil {
		return e.levFilter(rounded, amount, raw)
	}
	return rounded
}

// Convert moves amount from the given currency into the other one.
func (e *Engine) Convert(from domain.CurrencyCode, amount decimal.Decimal, policy domain.RoundingPolicy) decimal.Decimal {
	if from == domain.BGN {
		return e.LevToEuro(amount)
	}
	return e.EuroToLev(amount, policy)
}
