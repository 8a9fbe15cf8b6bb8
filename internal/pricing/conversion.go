package pricing

import "billbook/internal/domain"

// ConversionLookup is the outcome of a conversion search between two units. When IsReversed
// is set the matching record runs secondary→primary and the caller must invert Rate.
type ConversionLookup struct {
	Rate       float64
	IsReversed bool
}

var identityConversion = ConversionLookup{Rate: 1}

// Factor returns f such that 1 primary unit = f secondary units for the searched pair.
func (l ConversionLookup) Factor() float64 {
	rate := l.Rate
	if rate <= 0 {
		rate = 1
	}
	if l.IsReversed {
		return 1 / rate
	}
	return rate
}

// FindConversionRate searches conversions for primary→secondary, then secondary→primary.
// Missing ids, identical ids and no match all yield the identity conversion.
func FindConversionRate(primaryUnitID, secondaryUnitID string, conversions []domain.UnitConversion) ConversionLookup {
	if primaryUnitID == "" || secondaryUnitID == "" || primaryUnitID == secondaryUnitID {
		return identityConversion
	}
	for i := range conversions {
		c := &conversions[i]
		if c.PrimaryUnitID == primaryUnitID && c.SecondaryUnitID == secondaryUnitID {
			return ConversionLookup{Rate: c.Rate()}
		}
	}
	for i := range conversions {
		c := &conversions[i]
		if c.PrimaryUnitID == secondaryUnitID && c.SecondaryUnitID == primaryUnitID {
			return ConversionLookup{Rate: c.Rate(), IsReversed: true}
		}
	}
	return identityConversion
}

// ConversionForCatalogItem returns the conversion record a catalog item explicitly points at,
// or nil when it has none or the record is unknown.
func ConversionForCatalogItem(item *domain.CatalogItem, conversions []domain.UnitConversion) *domain.UnitConversion {
	if item == nil || item.UnitConversionID == "" {
		return nil
	}
	for i := range conversions {
		if conversions[i].ID == item.UnitConversionID {
			return &conversions[i]
		}
	}
	return nil
}

// RowConversion resolves the conversion for a row's unit pair. A catalog item's explicit
// conversion wins when it links the same two units; otherwise FindConversionRate decides.
func RowConversion(primaryUnitID, secondaryUnitID string, catalog *domain.CatalogItem, conversions []domain.UnitConversion) ConversionLookup {
	if primaryUnitID == "" || secondaryUnitID == "" || primaryUnitID == secondaryUnitID {
		return identityConversion
	}
	if c := ConversionForCatalogItem(catalog, conversions); c != nil {
		switch {
		case c.PrimaryUnitID == primaryUnitID && c.SecondaryUnitID == secondaryUnitID:
			return ConversionLookup{Rate: c.Rate()}
		case c.PrimaryUnitID == secondaryUnitID && c.SecondaryUnitID == primaryUnitID:
			return ConversionLookup{Rate: c.Rate(), IsReversed: true}
		}
	}
	return FindConversionRate(primaryUnitID, secondaryUnitID, conversions)
}
