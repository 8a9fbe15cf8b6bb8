package service_test

import (
	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/pricing"
)

func testRefs() *pricing.ReferenceData {
	return &pricing.ReferenceData{
		Country: "IN",
		Units: []domain.Unit{
			{ID: "u-box", ShortName: "BOX"},
			{ID: "u-pcs", ShortName: "PCS"},
		},
		Conversions: []domain.UnitConversion{
			{ID: "c-box-pcs", PrimaryUnitID: "u-box", SecondaryUnitID: "u-pcs", ConversionRate: 12},
		},
		Catalog: []domain.CatalogItem{
			{
				ID: "cat-soap", Name: "Soap", SalePrice: 100, PurchasePrice: 80,
				TaxRate: "GST18", HSNCode: "34011110",
				WholesaleQuantity: 10, WholesalePrice: 90,
				UnitConversionID: "c-box-pcs",
			},
		},
		TaxRates: pricing.TaxRateTable{
			"IN": {
				{Code: "GST5", Label: "GST@5%"},
				{Code: "GST18", Label: "GST@18%"},
			},
		},
	}
}

func soapItem() domain.DocumentItem {
	return domain.DocumentItem{
		ID:                uuid.New(),
		ItemID:            "cat-soap",
		ItemName:          "Soap",
		PrimaryQuantity:   1,
		PrimaryUnitID:     "u-box",
		PrimaryUnitName:   "BOX",
		SecondaryUnitID:   "u-pcs",
		SecondaryUnitName: "PCS",
		PricePerUnit:      100,
		TaxType:           "GST18",
		TaxRate:           18,
		TaxAmount:         18,
		Amount:            118,
	}
}

// readyDocument is a stored draft that passes every blocking rule.
func readyDocument() *domain.Document {
	balance := 0.0
	return &domain.Document{
		ID:              uuid.New(),
		Kind:            domain.DocumentKindSale,
		Status:          domain.DocumentStatusDraft,
		Number:          "INV-001",
		Date:            "2026-01-15",
		PartyName:       "Acme Traders",
		Country:         "IN",
		TransactionType: domain.TransactionTypeCash,
		PaymentType:     domain.PaymentTypeCash,
		Items:           []domain.DocumentItem{soapItem()},
		Charges:         []domain.Charge{},
		Transportation:  []domain.Transportation{},
		Total:           118,
		TaxAmount:       18,
		PaidAmount:      118,
		BalanceAmount:   &balance,
	}
}
