package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"billbook/internal/domain"
)

const (
	itemsSheet   = "Items"
	summarySheet = "Summary"
)

// WriteXLSX renders doc as a workbook with an Items sheet and a Summary sheet.
func WriteXLSX(doc *domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}

	if err := setRow(f, itemsSheet, 1, stringsToCells(itemColumns)); err != nil {
		return nil, err
	}
	for i := range doc.Items {
		if err := setRow(f, itemsSheet, i+2, itemCells(doc, &doc.Items[i])); err != nil {
			return nil, err
		}
	}

	for i, line := range summaryLines(doc) {
		if err := setRow(f, summarySheet, i+1, []interface{}{line.label, line.value}); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

// itemCells keeps numbers numeric so spreadsheet formulas work on the export.
func itemCells(doc *domain.Document, item *domain.DocumentItem) []interface{} {
	return []interface{}{
		doc.Number,
		doc.Date,
		string(doc.Kind),
		doc.PartyName,
		item.ItemName,
		item.HSNCode,
		item.PrimaryQuantity,
		item.PrimaryUnitName,
		item.SecondaryQuantity,
		item.SecondaryUnitName,
		item.PricePerUnit,
		item.DiscountPercent,
		item.DiscountAmount,
		item.TaxType,
		item.TaxRate,
		item.TaxAmount,
		formatBool(item.SalePriceTaxInclusive),
		item.Amount,
	}
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
