package pricing

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"billbook/internal/domain"
)

// Editor applies single-field edits to document items against a reference snapshot.
// Every edit that touches a pricing input re-derives discount, tax and amount.
type Editor struct {
	refs    *ReferenceData
	kind    domain.DocumentKind
	country string
}

// NewEditor creates an Editor for documents of kind priced under country's tax table.
func NewEditor(refs *ReferenceData, kind domain.DocumentKind, country string) *Editor {
	return &Editor{refs: refs, kind: kind, country: country}
}

// NewItemFromCatalog returns a fresh row seeded from the catalog item with catalogID.
func (e *Editor) NewItemFromCatalog(catalogID string) (domain.DocumentItem, error) {
	item := domain.NewDocumentItem()
	if err := e.Apply(&item, domain.ItemFieldItemID, catalogID); err != nil {
		return domain.DocumentItem{}, err
	}
	return item, nil
}

// Apply sets field on item to value and re-derives what depends on it.
func (e *Editor) Apply(item *domain.DocumentItem, field domain.ItemField, value any) error {
	switch field {
	case domain.ItemFieldItemID:
		return e.selectCatalogItem(item, cast.ToString(value))
	case domain.ItemFieldItemName:
		item.ItemName = cast.ToString(value)
	case domain.ItemFieldHSNCode:
		item.HSNCode = strings.TrimSpace(cast.ToString(value))
	case domain.ItemFieldPrimaryQuantity:
		item.PrimaryQuantity = ParseNumber(value)
		if catalog := e.refs.CatalogItem(item.ItemID); catalog != nil {
			item.PricePerUnit = WholesalePrice(catalog, RetailPrice(catalog, e.kind), item.PrimaryQuantity)
		}
		e.Recalculate(item)
	case domain.ItemFieldSecondaryQuantity:
		item.SecondaryQuantity = ParseNumber(value)
		e.Recalculate(item)
	case domain.ItemFieldPricePerUnit:
		item.PricePerUnit = ParseNumber(value)
		e.Recalculate(item)
	case domain.ItemFieldDiscountPercent:
		item.DiscountPercent = ParseNumber(value)
		e.Recalculate(item)
	case domain.ItemFieldTaxType:
		item.TaxType = cast.ToString(value)
		item.TaxRate = e.refs.TaxRate(e.country, item.TaxType)
		e.Recalculate(item)
	case domain.ItemFieldSalePriceTaxInclusive:
		item.SalePriceTaxInclusive = cast.ToBool(value)
		e.Recalculate(item)
	case domain.ItemFieldPrimaryUnitID:
		item.PrimaryUnitID = cast.ToString(value)
		item.PrimaryUnitName = e.refs.UnitName(item.PrimaryUnitID)
		e.Recalculate(item)
	case domain.ItemFieldSecondaryUnitID:
		item.SecondaryUnitID = cast.ToString(value)
		item.SecondaryUnitName = e.refs.UnitName(item.SecondaryUnitID)
		e.Recalculate(item)
	case domain.ItemFieldAmount:
		ReverseFromAmount(item, ParseNumber(value))
	case domain.ItemFieldSwapUnits:
		return SwapUnits(item, e.refs.CatalogItem(item.ItemID), e.refs.conversions())
	case domain.ItemFieldDiscountAmount, domain.ItemFieldTaxAmount, domain.ItemFieldTaxRate:
		return fmt.Errorf("%s: %w", field, domain.ErrFieldNotEditable)
	default:
		return fmt.Errorf("item field %q: %w", field, domain.ErrUnknownField)
	}
	return nil
}

// Recalculate re-derives discount, tax and amount from the item's stored inputs.
func (e *Editor) Recalculate(item *domain.DocumentItem) {
	ApplyLine(item, Calculate(InputFor(item, e.ConversionFactor(item))))
}

// Refresh re-resolves the item's tax rate from its code, then recalculates. Items without
// a tax code keep the rate they carry.
func (e *Editor) Refresh(item *domain.DocumentItem) {
	if item.TaxType != "" {
		item.TaxRate = e.refs.TaxRate(e.country, item.TaxType)
	}
	e.Recalculate(item)
}

// ConversionFactor is the row's "1 primary = f secondary" factor.
func (e *Editor) ConversionFactor(item *domain.DocumentItem) float64 {
	catalog := e.refs.CatalogItem(item.ItemID)
	return RowConversion(item.PrimaryUnitID, item.SecondaryUnitID, catalog, e.refs.conversions()).Factor()
}

func (e *Editor) selectCatalogItem(item *domain.DocumentItem, catalogID string) error {
	catalog := e.refs.CatalogItem(catalogID)
	if catalog == nil {
		return fmt.Errorf("catalog item %q: %w", catalogID, domain.ErrCatalogItemNotFound)
	}

	item.ItemID = catalog.ID
	item.ItemName = catalog.Name
	item.HSNCode = catalog.HSNCode
	item.PricePerUnit = RetailPrice(catalog, e.kind)
	item.WholesaleQuantity = catalog.WholesaleQuantity
	item.WholesalePrice = catalog.WholesalePrice
	item.TaxType = catalog.TaxRate
	item.TaxRate = e.refs.TaxRate(e.country, catalog.TaxRate)
	item.SalePriceTaxInclusive = catalog.SalePriceTaxInclusive

	if conv := ConversionForCatalogItem(catalog, e.refs.conversions()); conv != nil {
		item.PrimaryUnitID = conv.PrimaryUnitID
		item.PrimaryUnitName = e.refs.UnitName(conv.PrimaryUnitID)
		item.SecondaryUnitID = conv.SecondaryUnitID
		item.SecondaryUnitName = e.refs.UnitName(conv.SecondaryUnitID)
	}
	if item.PrimaryQuantity == 0 && item.SecondaryQuantity == 0 {
		item.PrimaryQuantity = 1
	}

	e.Recalculate(item)
	return nil
}
