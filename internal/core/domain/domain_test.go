package domain_test

import (
	"testing"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseCurrencyCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    domain.CurrencyCode
		wantErr bool
	}{
		{name: "lev", in: "BGN", want: domain.BGN},
		{name: "euro lower case", in: " eur ", want: domain.EUR},
		{name: "unsupported", in: "USD", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseCurrencyCode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrencyCode_OtherAndLabel(t *testing.T) {
	assert.Equal(t, domain.EUR, domain.BGN.Other())
	assert.Equal(t, domain.BGN, domain.EUR.Other())
	assert.Equal(t, "лв.", domain.BGN.Label())
	assert.Equal(t, "€", domain.EUR.Label())
}

func TestMigrationState_Status(t *testing.T) {
	tests := []struct {
		name  string
		state domain.MigrationState
		want  domain.MigrationStatus
	}{
		{name: "nothing persisted", state: domain.MigrationState{}, want: domain.MigrationIdle},
		{name: "fresh start", state: domain.MigrationState{InProgress: true, Total: 120}, want: domain.MigrationRunning},
		{name: "mid run", state: domain.MigrationState{InProgress: true, Offset: 50, Total: 120}, want: domain.MigrationRunning},
		{
			name:  "paused on error",
			state: domain.MigrationState{InProgress: true, Offset: 51, Total: 120, LastError: &domain.MigrationError{EntityID: 7}},
			want:  domain.MigrationErrorPaused,
		},
		{name: "all processed", state: domain.MigrationState{InProgress: true, Offset: 120, Total: 120}, want: domain.MigrationComplete},
		{
			name:  "complete wins over last error",
			state: domain.MigrationState{InProgress: true, Offset: 120, Total: 120, LastError: &domain.MigrationError{EntityID: 7}},
			want:  domain.MigrationComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Status())
		})
	}
}

func TestProduct_ActivePrice(t *testing.T) {
	onSale := domain.Product{RegularPrice: decimalPtr("25.00"), SalePrice: decimalPtr("19.99")}
	price, ok := onSale.ActivePrice()
	require.True(t, ok)
	assert.True(t, onSale.IsOnSale())
	assert.Equal(t, "19.99", price.StringFixed(2))

	regularOnly := domain.Product{RegularPrice: decimalPtr("25.00"), SalePrice: decimalPtr("0")}
	price, ok = regularOnly.ActivePrice()
	require.True(t, ok)
	assert.False(t, regularOnly.IsOnSale())
	assert.Equal(t, "25.00", price.StringFixed(2))

	_, ok = domain.Product{}.ActivePrice()
	assert.False(t, ok)
}

func TestAnnotationContext_Valid(t *testing.T) {
	for _, c := range domain.AllAnnotationContexts {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, domain.AnnotationContext("checkout_banner").Valid())
}
