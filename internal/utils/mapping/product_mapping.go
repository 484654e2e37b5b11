package mapping

import (
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		ParentID:     d.ParentID,
		ProductType:  string(d.Type),
		Name:         d.Name,
		RegularPrice: d.RegularPrice,
		SalePrice:    d.SalePrice,
		MinPrice:     d.MinPrice,
		MaxPrice:     d.MaxPrice,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product and its variation IDs to a domain Product
func ToDomainProduct(m models.Product, variations []int64) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		ParentID:     m.ParentID,
		Type:         domain.ProductType(m.ProductType),
		Name:         m.Name,
		RegularPrice: m.RegularPrice,
		SalePrice:    m.SalePrice,
		MinPrice:     m.MinPrice,
		MaxPrice:     m.MaxPrice,
		Variations:   variations,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToSettingsMap converts setting rows to a key-value map
func ToSettingsMap(ms []models.Setting) map[string]string {
	values := make(map[string]string, len(ms))
	for _, m := range ms {
		values[m.Key] = m.Value
	}
	return values
}
