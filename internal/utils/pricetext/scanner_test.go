package pricetext_test

import (
	"testing"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/utils/pricetext"
	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		currency domain.CurrencyCode
		want     string
		found    bool
	}{
		{name: "space thousands comma decimals", fragment: "1 650,00 лв.", currency: domain.BGN, want: "1650.00", found: true},
		{name: "dot thousands comma decimals", fragment: "1.650,00 лв.", currency: domain.BGN, want: "1650.00", found: true},
		{name: "no break space thousands", fragment: "1\u00a0650,00\u00a0лв.", currency: domain.BGN, want: "1650.00", found: true},
		{name: "comma thousands dot decimals", fragment: "1,650.00", currency: domain.BGN, want: "1650.00", found: true},
		{name: "plain amount", fragment: "25,00 лв.", currency: domain.BGN, want: "25.00", found: true},
		{name: "iso code", fragment: "Total: 49.90 BGN", currency: domain.BGN, want: "49.90", found: true},
		{
			name:     "store markup",
			fragment: `<span class="woocommerce-Price-amount amount"><bdi>25,00&nbsp;<span class="woocommerce-Price-currencySymbol">лв.</span></bdi></span>`,
			currency: domain.BGN,
			want:     "25.00",
			found:    true,
		},
		{name: "euro sign first", fragment: "€1,650.00", currency: domain.EUR, want: "1650.00", found: true},
		{name: "euro sign last", fragment: "12,78 €", currency: domain.EUR, want: "12.78", found: true},
		{name: "currency amount wins", fragment: "Qty 2,00 x 12.50 лв.", currency: domain.BGN, want: "12.50", found: true},
		{name: "three trailing digits", fragment: "12.345 лв.", currency: domain.BGN, found: false},
		{name: "thousands without decimals", fragment: "1.650", currency: domain.BGN, found: false},
		{name: "no digits", fragment: "Безплатна доставка", currency: domain.BGN, found: false},
		{name: "empty", fragment: "", currency: domain.BGN, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pricetext.ExtractAmount(tt.fragment, tt.currency)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.StringFixed(2))
			}
		})
	}
}

func TestHasAnnotation(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     bool
	}{
		{name: "primary only", fragment: "25,00 лв.", want: false},
		{name: "primary markup", fragment: `<span class="amount">25,00&nbsp;лв.</span>`, want: false},
		{name: "marker class", fragment: `25,00 лв. <span class="eur-price">(12.78 €)</span>`, want: true},
		{name: "label in text", fragment: "25,00 лв. (12.78 €)", want: true},
		{name: "entity encoded label", fragment: "25,00 лв. / 12.78 &euro;", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricetext.HasAnnotation(tt.fragment, domain.EuroLabel))
		})
	}
}

func TestHasAnnotation_AfterCompose(t *testing.T) {
	fragments := []string{
		"25,00 лв.",
		"1 650,00 лв.",
		`<span class="woocommerce-Price-amount amount"><bdi>8,32&nbsp;<span class="woocommerce-Price-currencySymbol">лв.</span></bdi></span>`,
	}
	formats := []domain.Format{domain.FormatBrackets, domain.FormatDivider}
	positions := []domain.Position{domain.PositionLeft, domain.PositionRight}

	for _, fragment := range fragments {
		assert.False(t, pricetext.HasAnnotation(fragment, domain.EuroLabel), fragment)
		for _, f := range formats {
			for _, p := range positions {
				out := pricetext.Compose(fragment, "1.00 €", domain.DisplayOptions{Position: p, Format: f})
				assert.True(t, pricetext.HasAnnotation(out, domain.EuroLabel), out)
			}
		}
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "plain", pricetext.Text("plain"))
	assert.Equal(t, "25,00\u00a0лв.", pricetext.Text(`<b>25,00&nbsp;<i>лв.</i></b>`))
	assert.Equal(t, "", pricetext.Text("<br/>"))
}
