package domain

// AnnotationContext names the storefront location a price fragment comes from.
// Each context has its own show toggle.
type AnnotationContext string

const (
	ContextSingleProduct   AnnotationContext = "single_product"
	ContextSalePrice       AnnotationContext = "sale_price"
	ContextVariableProduct AnnotationContext = "variable_product"
	ContextCartItem        AnnotationContext = "cart_item"
	ContextCartSubtotal    AnnotationContext = "cart_subtotal"
	ContextCartTotal       AnnotationContext = "cart_total"
	ContextFee             AnnotationContext = "fee"
	ContextTaxLine         AnnotationContext = "tax_line"
	ContextShippingLabel   AnnotationContext = "shipping_label"
	ContextMiniCart        AnnotationContext = "mini_cart"
	ContextCoupon          AnnotationContext = "coupon"
	ContextOrderTotal      AnnotationContext = "order_total"
	ContextOrdersTable     AnnotationContext = "orders_table"
)

// AllAnnotationContexts lists every context in display order.
var AllAnnotationContexts = []AnnotationContext{
	ContextSingleProduct,
	ContextSalePrice,
	ContextVariableProduct,
	ContextCartItem,
	ContextCartSubtotal,
	ContextCartTotal,
	ContextFee,
	ContextTaxLine,
	ContextShippingLabel,
	ContextMiniCart,
	ContextCoupon,
	ContextOrderTotal,
	ContextOrdersTable,
}

// Valid reports whether c is a known context.
func (c AnnotationContext) Valid() bool {
	for _, known := range AllAnnotationContexts {
		if c == known {
			return true
		}
	}
	return false
}
