package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/models"
	"github.com/SscSPs/dual_price_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainProduct(t *testing.T) {
	regular := decimal.RequireFromString("25.0000")
	created := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	m := models.Product{
		ProductID:    7,
		ProductType:  "variable",
		Status:       "draft",
		Name:         "T-shirt",
		RegularPrice: &regular,
		AuditFields:  models.AuditFields{CreatedAt: created, LastUpdatedAt: created},
	}

	d := mapping.ToDomainProduct(m, []int64{8, 9})

	assert.Equal(t, int64(7), d.ProductID)
	assert.True(t, d.IsVariable())
	assert.Equal(t, []int64{8, 9}, d.Variations)
	assert.Nil(t, d.SalePrice)
	assert.True(t, d.RegularPrice.Equal(regular))
	assert.Equal(t, created, d.CreatedAt)

	back := mapping.ToModelProduct(d)
	assert.Equal(t, "variable", back.ProductType)
	assert.Equal(t, m.RegularPrice, back.RegularPrice)
}

func TestToSettingsMap(t *testing.T) {
	values := mapping.ToSettingsMap([]models.Setting{
		{Key: domain.SettingStoreCurrency, Value: "BGN"},
		{Key: domain.SettingMigrationOffset, Value: "50"},
	})

	assert.Equal(t, map[string]string{
		domain.SettingStoreCurrency:   "BGN",
		domain.SettingMigrationOffset: "50",
	}, values)
}
