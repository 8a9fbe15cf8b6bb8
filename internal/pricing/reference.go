package pricing

import "billbook/internal/domain"

// ReferenceData is a read-only snapshot of the master data the engine prices against.
// Callers load it once and never mutate it while a document is being edited.
type ReferenceData struct {
	Country     string                  `json:"country"`
	Units       []domain.Unit           `json:"units"`
	Conversions []domain.UnitConversion `json:"conversions"`
	Catalog     []domain.CatalogItem    `json:"catalog"`
	TaxRates    TaxRateTable            `json:"tax_rates"`
	HSN         []domain.HSNEntry       `json:"hsn"`
}

// CatalogItem returns the catalog record with id, or nil.
func (r *ReferenceData) CatalogItem(id string) *domain.CatalogItem {
	if r == nil || id == "" {
		return nil
	}
	for i := range r.Catalog {
		if r.Catalog[i].ID == id {
			return &r.Catalog[i]
		}
	}
	return nil
}

// UnitName returns the short name of unit id, or "" when unknown.
func (r *ReferenceData) UnitName(id string) string {
	if r == nil || id == "" {
		return ""
	}
	for i := range r.Units {
		if r.Units[i].ID == id {
			return r.Units[i].ShortName
		}
	}
	return ""
}

// TaxRate resolves a tax code for country, falling back to the snapshot's own country.
func (r *ReferenceData) TaxRate(country, code string) float64 {
	if r == nil {
		return 0
	}
	if country == "" {
		country = r.Country
	}
	return r.TaxRates.Resolve(country, code)
}

func (r *ReferenceData) conversions() []domain.UnitConversion {
	if r == nil {
		return nil
	}
	return r.Conversions
}
