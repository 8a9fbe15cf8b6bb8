package pricing_test

import (
	"billbook/internal/domain"
	"billbook/internal/pricing"
)

func testReferenceData() *pricing.ReferenceData {
	return &pricing.ReferenceData{
		Country: "IN",
		Units: []domain.Unit{
			{ID: "u-box", ShortName: "BOX"},
			{ID: "u-pcs", ShortName: "PCS"},
			{ID: "u-kg", ShortName: "KG"},
			{ID: "u-gm", ShortName: "GM"},
		},
		Conversions: []domain.UnitConversion{
			{ID: "c-box-pcs", PrimaryUnitID: "u-box", SecondaryUnitID: "u-pcs", ConversionRate: 12},
			{ID: "c-gm-kg", PrimaryUnitID: "u-gm", SecondaryUnitID: "u-kg", ConversionRate: 0.001},
		},
		Catalog: []domain.CatalogItem{
			{
				ID: "cat-soap", Name: "Soap", SalePrice: 100, PurchasePrice: 80,
				TaxRate: "GST18", HSNCode: "34011110",
				WholesaleQuantity: 10, WholesalePrice: 90,
				UnitConversionID: "c-box-pcs",
			},
			{
				ID: "cat-rice", Name: "Rice", SalePrice: 60, PurchasePrice: 50,
				TaxRate: "GST5", HSNCode: "1006", SalePriceTaxInclusive: true,
			},
		},
		TaxRates: pricing.TaxRateTable{
			"IN": {
				{Code: "None", Label: "None"},
				{Code: "GST0", Label: "GST@0%"},
				{Code: "GST5", Label: "GST@5%"},
				{Code: "GST18", Label: "GST@18%"},
				{Code: "IGST0.25", Label: "IGST 0.25% (rough diamonds)"},
				{Code: "EXEMPT", Label: "Exempt"},
			},
			"AE": {
				{Code: "VAT5", Label: "VAT 5%"},
			},
		},
	}
}

func testOption(code, label string) domain.TaxRateOption {
	return domain.TaxRateOption{Code: code, Label: label}
}
