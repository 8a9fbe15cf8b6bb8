package pricing

import "billbook/internal/domain"

// WholesaleApplies reports whether quantity reaches a usable wholesale threshold.
func WholesaleApplies(wholesaleQuantity, wholesalePrice, quantity float64) bool {
	return wholesaleQuantity > 0 && wholesalePrice > 0 && quantity >= wholesaleQuantity
}

// WholesalePrice picks the per-unit price for a catalog item at the given primary quantity.
func WholesalePrice(catalog *domain.CatalogItem, retailPrice, quantity float64) float64 {
	if catalog != nil && WholesaleApplies(catalog.WholesaleQuantity, catalog.WholesalePrice, quantity) {
		return catalog.WholesalePrice
	}
	return retailPrice
}

// RetailPrice is the catalog price a document of the given kind starts from.
func RetailPrice(catalog *domain.CatalogItem, kind domain.DocumentKind) float64 {
	if catalog == nil {
		return 0
	}
	if kind == domain.DocumentKindPurchase {
		return catalog.PurchasePrice
	}
	return catalog.SalePrice
}
