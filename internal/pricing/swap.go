package pricing

import "billbook/internal/domain"

// SwapUnits exchanges the primary and secondary unit of item, carrying quantities across and
// re-expressing the price against the conversion record: a direct record multiplies the price
// by its rate, a reversed one divides. Swapping twice restores the row up to 2-decimal
// rounding of the price.
func SwapUnits(item *domain.DocumentItem, catalog *domain.CatalogItem, conversions []domain.UnitConversion) error {
	if item.PrimaryUnitID == "" || item.SecondaryUnitID == "" {
		return domain.ErrUnitsNotAssigned
	}

	lookup := RowConversion(item.PrimaryUnitID, item.SecondaryUnitID, catalog, conversions)
	// f: 1 old primary = f old secondary.
	f := lookup.Factor()

	item.PrimaryUnitID, item.SecondaryUnitID = item.SecondaryUnitID, item.PrimaryUnitID
	item.PrimaryUnitName, item.SecondaryUnitName = item.SecondaryUnitName, item.PrimaryUnitName
	item.PrimaryQuantity, item.SecondaryQuantity = item.SecondaryQuantity, item.PrimaryQuantity
	if rate := lookup.Rate; rate > 0 {
		if lookup.IsReversed {
			item.PricePerUnit = Round2(item.PricePerUnit / rate)
		} else {
			item.PricePerUnit = Round2(item.PricePerUnit * rate)
		}
	}

	// The new primary is the old secondary, so the direction inverts.
	ApplyLine(item, Calculate(InputFor(item, 1/f)))
	return nil
}
