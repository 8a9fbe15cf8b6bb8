package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Unit is a unit of measure from the unit master.
type Unit struct {
	ID        string `db:"id" json:"id"`
	ShortName string `db:"short_name" json:"short_name"`
}

// UnitConversion links two units: 1 primary unit = ConversionRate secondary units.
type UnitConversion struct {
	ID              string  `db:"id" json:"id"`
	PrimaryUnitID   string  `db:"primary_unit_id" json:"primary_unit_id"`
	SecondaryUnitID string  `db:"secondary_unit_id" json:"secondary_unit_id"`
	ConversionRate  float64 `db:"conversion_rate" json:"conversion_rate"`
}

// Rate returns the conversion rate, treating a missing or non-positive rate as identity.
func (c *UnitConversion) Rate() float64 {
	if c.ConversionRate > 0 {
		return c.ConversionRate
	}
	return 1
}

// TaxRateOption is one entry of a country's tax-rate table. The percentage lives in Label.
type TaxRateOption struct {
	Country string `db:"country" json:"country,omitempty"`
	Code    string `db:"code" json:"code"`
	Label   string `db:"label" json:"label"`
}

// CatalogItem is a read-only item master record used to seed document rows.
type CatalogItem struct {
	ID                    string  `db:"id" json:"id"`
	Name                  string  `db:"name" json:"name"`
	SalePrice             float64 `db:"sale_price" json:"sale_price"`
	PurchasePrice         float64 `db:"purchase_price" json:"purchase_price"`
	TaxRate               string  `db:"tax_rate" json:"tax_rate"`
	HSNCode               string  `db:"hsn_code" json:"hsn_code"`
	WholesalePrice        float64 `db:"wholesale_price" json:"wholesale_price"`
	WholesaleQuantity     float64 `db:"wholesale_quantity" json:"wholesale_quantity"`
	UnitConversionID      string  `db:"unit_conversion_id" json:"unit_conversion_id"`
	SalePriceTaxInclusive bool    `db:"sale_price_tax_inclusive" json:"sale_price_tax_inclusive"`
}

// HSNEntry is a single HSN/SAC code with one of its valid GST rates.
type HSNEntry struct {
	Code          string  `db:"code" json:"code"`
	Description   string  `db:"description" json:"description"`
	GSTRate       float64 `db:"gst_rate" json:"gst_rate"`
	ConditionDesc string  `db:"condition_desc" json:"condition_desc"`
}

// DocumentItem is one line of a document. DiscountAmount, TaxAmount and Amount are derived
// and only change through the pricing editor.
type DocumentItem struct {
	ID                    uuid.UUID `json:"id"`
	ItemID                string    `json:"item_id"`
	ItemName              string    `json:"item_name"`
	PrimaryQuantity       float64   `json:"primary_quantity"`
	SecondaryQuantity     float64   `json:"secondary_quantity"`
	PrimaryUnitID         string    `json:"primary_unit_id"`
	PrimaryUnitName       string    `json:"primary_unit_name"`
	SecondaryUnitID       string    `json:"secondary_unit_id"`
	SecondaryUnitName     string    `json:"secondary_unit_name"`
	PricePerUnit          float64   `json:"price_per_unit"`
	WholesaleQuantity     float64   `json:"wholesale_quantity"`
	WholesalePrice        float64   `json:"wholesale_price"`
	DiscountPercent       float64   `json:"discount_percent"`
	DiscountAmount        float64   `json:"discount_amount"`
	TaxType               string    `json:"tax_type"`
	TaxRate               float64   `json:"tax_rate"`
	TaxAmount             float64   `json:"tax_amount"`
	Amount                float64   `json:"amount"`
	SalePriceTaxInclusive bool      `json:"sale_price_tax_inclusive"`
	HSNCode               string    `json:"hsn_code"`
}

// NewDocumentItem returns an empty row with a fresh id.
func NewDocumentItem() DocumentItem {
	return DocumentItem{ID: uuid.New()}
}

// Charge is an additional document-level charge added to the subtotal.
type Charge struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
}

// Transportation holds dispatch details. It never contributes to totals.
type Transportation struct {
	ID              uuid.UUID `json:"id"`
	TransporterName string    `json:"transporter_name"`
	VehicleNumber   string    `json:"vehicle_number"`
	DeliveryDate    string    `json:"delivery_date"`
	DeliveryPlace   string    `json:"delivery_place"`
	Notes           string    `json:"notes"`
}

// Document is an invoice-like record: line items, charges, transportation and the
// document-level adjustments that settle into Total.
type Document struct {
	ID              uuid.UUID        `json:"id"`
	Kind            DocumentKind     `json:"kind"`
	Status          DocumentStatus   `json:"status"`
	Number          string           `json:"number"`
	Date            string           `json:"date"`
	PartyID         string           `json:"party_id"`
	PartyName       string           `json:"party_name"`
	Country         string           `json:"country"`
	TransactionType TransactionType  `json:"transaction_type"`
	PaymentType     PaymentType      `json:"payment_type"`
	BankID          string           `json:"bank_id"`
	ChequeNumber    string           `json:"cheque_number"`
	ChequeDate      string           `json:"cheque_date"`
	Items           []DocumentItem   `json:"items"`
	Charges         []Charge         `json:"charges"`
	Transportation  []Transportation `json:"transportation"`

	// DiscountAmount is the manual document-level discount, unrelated to item discounts.
	DiscountAmount float64 `json:"discount_amount"`
	Shipping       float64 `json:"shipping"`
	Packaging      float64 `json:"packaging"`
	Adjustment     float64 `json:"adjustment"`
	RoundOff       float64 `json:"round_off"`
	PaidAmount     float64 `json:"paid_amount"`

	// Derived by the totals pipeline. BalanceAmount stays nil until the first recompute.
	Total         float64  `json:"total"`
	TaxAmount     float64  `json:"tax_amount"`
	BalanceAmount *float64 `json:"balance_amount"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocument returns an empty draft with a single empty row.
func NewDocument(kind DocumentKind, txType TransactionType) Document {
	return Document{
		ID:              uuid.New(),
		Kind:            kind,
		Status:          DocumentStatusDraft,
		TransactionType: txType,
		PaymentType:     PaymentTypeCash,
		Items:           []DocumentItem{NewDocumentItem()},
		Charges:         []Charge{},
		Transportation:  []Transportation{},
	}
}

// Clone returns a copy of d that shares no slices or pointers with it.
func (d *Document) Clone() Document {
	out := *d
	out.Items = slices.Clone(d.Items)
	out.Charges = slices.Clone(d.Charges)
	out.Transportation = slices.Clone(d.Transportation)
	if d.BalanceAmount != nil {
		balance := *d.BalanceAmount
		out.BalanceAmount = &balance
	}
	return out
}

// DocumentFilters narrows a document listing.
type DocumentFilters struct {
	Kind      DocumentKind
	Status    DocumentStatus
	PartyName string
}
