package pricetext_test

import (
	"testing"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/utils/pricetext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12.78", want: "12.78"},
		{in: "0", want: "0.00"},
		{in: "1234.5", want: "1,234.50"},
		{in: "1234567.891", want: "1,234,567.89"},
		{in: "-12.78", want: "-12.78"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pricetext.FormatAmount(d(tt.in)))
		})
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		opts domain.DisplayOptions
		want string
	}{
		{
			name: "right brackets",
			opts: domain.DisplayOptions{Position: domain.PositionRight, Format: domain.FormatBrackets},
			want: `25,00 лв. <span class="eur-price">(12.78 €)</span>`,
		},
		{
			name: "right divider",
			opts: domain.DisplayOptions{Position: domain.PositionRight, Format: domain.FormatDivider},
			want: `25,00 лв. <span class="eur-price">/ 12.78 €</span>`,
		},
		{
			name: "left brackets",
			opts: domain.DisplayOptions{Position: domain.PositionLeft, Format: domain.FormatBrackets},
			want: `<span class="eur-price">(12.78 €)</span> 25,00 лв.`,
		},
		{
			name: "left divider",
			opts: domain.DisplayOptions{Position: domain.PositionLeft, Format: domain.FormatDivider},
			want: `<span class="eur-price">/ 12.78 €</span> 25,00 лв.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricetext.Compose("25,00 лв.", "12.78 €", tt.opts))
		})
	}
}

func TestComposeRange(t *testing.T) {
	opts := domain.DefaultDisplayOptions()

	got := pricetext.ComposeRange("10,00 лв. &ndash; 20,00 лв.", d("5.11"), d("10.23"), false, domain.EuroLabel, opts)
	assert.Equal(t, `10,00 лв. &ndash; 20,00 лв. <span class="eur-price">(5.11 - 10.23 €)</span>`, got)

	got = pricetext.ComposeRange("10,00 лв.", d("5.11"), d("5.11"), true, domain.EuroLabel, opts)
	assert.Equal(t, `10,00 лв. <span class="eur-price">(5.11 €)</span>`, got)

	got = pricetext.ComposeRange("10,01 лв. &ndash; 10,02 лв.", d("5.12"), d("5.12"), false, domain.EuroLabel, opts)
	assert.Equal(t, `10,01 лв. &ndash; 10,02 лв. <span class="eur-price">(5.12 - 5.12 €)</span>`, got)
}

func TestRelabelLegacy(t *testing.T) {
	assert.Equal(t, "1,650.00 €", pricetext.RelabelLegacy(d("1650"), false))
	assert.Equal(t, "-5.00 €", pricetext.RelabelLegacy(d("5"), true))
	assert.Equal(t, "-5.00 €", pricetext.RelabelLegacy(d("-5"), true))
}
