package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"billbook/internal/domain"
	"billbook/internal/pricing"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// itemColumns is the header row shared by the CSV and XLSX item sheets.
var itemColumns = []string{
	"Document Number",
	"Document Date",
	"Kind",
	"Party Name",
	"Item Name",
	"HSN Code",
	"Primary Quantity",
	"Primary Unit",
	"Secondary Quantity",
	"Secondary Unit",
	"Price Per Unit",
	"Discount %",
	"Discount Amount",
	"Tax Type",
	"Tax Rate",
	"Tax Amount",
	"Tax Inclusive",
	"Amount",
}

// Writer wraps csv.Writer for exporting document line items.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the item header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(itemColumns)
}

// WriteDocument writes one row per line item followed by a blank row and the
// document's settled totals as label/value pairs.
func (w *Writer) WriteDocument(doc *domain.Document) error {
	for i := range doc.Items {
		if err := w.csv.Write(itemRow(doc, &doc.Items[i])); err != nil {
			return err
		}
	}
	if err := w.csv.Write([]string{}); err != nil {
		return err
	}
	for _, line := range summaryLines(doc) {
		if err := w.csv.Write([]string{line.label, formatMoney(line.value)}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func itemRow(doc *domain.Document, item *domain.DocumentItem) []string {
	return []string{
		doc.Number,
		doc.Date,
		string(doc.Kind),
		doc.PartyName,
		item.ItemName,
		item.HSNCode,
		formatQuantity(item.PrimaryQuantity),
		item.PrimaryUnitName,
		formatQuantity(item.SecondaryQuantity),
		item.SecondaryUnitName,
		formatMoney(item.PricePerUnit),
		formatQuantity(item.DiscountPercent),
		formatMoney(item.DiscountAmount),
		item.TaxType,
		formatQuantity(item.TaxRate),
		formatMoney(item.TaxAmount),
		formatBool(item.SalePriceTaxInclusive),
		formatMoney(item.Amount),
	}
}

type summaryLine struct {
	label string
	value float64
}

// summaryLines re-aggregates the document so exports never disagree with the pricing rules.
func summaryLines(doc *domain.Document) []summaryLine {
	totals := pricing.EnforceCashPolicy(doc.TransactionType, pricing.Aggregate(doc))
	lines := []summaryLine{{"Items Total", totals.ItemsTotal}}
	for i := range doc.Charges {
		lines = append(lines, summaryLine{doc.Charges[i].Name, doc.Charges[i].Amount})
	}
	return append(lines,
		summaryLine{"Discount", doc.DiscountAmount},
		summaryLine{"Shipping", doc.Shipping},
		summaryLine{"Packaging", doc.Packaging},
		summaryLine{"Adjustment", doc.Adjustment},
		summaryLine{"Round Off", doc.RoundOff},
		summaryLine{"Tax", totals.TaxAmount},
		summaryLine{"Total", totals.Total},
		summaryLine{"Paid", totals.PaidAmount},
		summaryLine{"Balance", totals.BalanceAmount},
	)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
