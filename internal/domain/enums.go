package domain

// DocumentKind selects which catalog price seeds a line item.
type DocumentKind string

const (
	DocumentKindSale     DocumentKind = "sale"
	DocumentKindPurchase DocumentKind = "purchase"
)

func (k DocumentKind) IsValid() bool {
	return k == DocumentKindSale || k == DocumentKindPurchase
}

// TransactionType distinguishes settled-at-once documents from ones carried on credit.
type TransactionType string

const (
	TransactionTypeCash   TransactionType = "cash"
	TransactionTypeCredit TransactionType = "credit"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCash || t == TransactionTypeCredit
}

// PaymentType identifies how a document is paid.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeBank   PaymentType = "bank"
	PaymentTypeCheque PaymentType = "cheque"
)

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeBank, PaymentTypeCheque:
		return true
	}
	return false
}

// DocumentMode is the editing mode a document is opened in.
type DocumentMode string

const (
	DocumentModeCreate DocumentMode = "create"
	DocumentModeEdit   DocumentMode = "edit"
	DocumentModeView   DocumentMode = "view"
)

func (m DocumentMode) IsValid() bool {
	switch m {
	case DocumentModeCreate, DocumentModeEdit, DocumentModeView:
		return true
	}
	return false
}

// DocumentStatus tracks the persisted lifecycle of a document.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusSubmitted DocumentStatus = "submitted"
)

// ValidationState is the state of the document validation state machine.
type ValidationState string

const (
	ValidationStatePristine   ValidationState = "pristine"
	ValidationStateValidating ValidationState = "validating"
	ValidationStateInvalid    ValidationState = "invalid"
	ValidationStateValid      ValidationState = "valid"
	ValidationStateSubmitting ValidationState = "submitting"
)

// ValidationRuleType categorizes validation rules.
type ValidationRuleType string

const (
	ValidationRuleRequired   ValidationRuleType = "required"
	ValidationRulePayment    ValidationRuleType = "payment"
	ValidationRuleSumCheck   ValidationRuleType = "sum_check"
	ValidationRuleCrossField ValidationRuleType = "cross_field"
	ValidationRuleCustom     ValidationRuleType = "custom"
)

// ValidationSeverity indicates whether a failed rule blocks submission.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus is the overall outcome of a validation run.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// FieldValidationStatus represents the validation state of an individual field.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusInvalid FieldValidationStatus = "invalid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
)

// ItemField names an editable (or derived) field of a DocumentItem.
type ItemField string

const (
	ItemFieldItemID                ItemField = "item_id"
	ItemFieldItemName              ItemField = "item_name"
	ItemFieldPrimaryQuantity       ItemField = "primary_quantity"
	ItemFieldSecondaryQuantity     ItemField = "secondary_quantity"
	ItemFieldPrimaryUnitID         ItemField = "primary_unit_id"
	ItemFieldPrimaryUnitName       ItemField = "primary_unit_name"
	ItemFieldSecondaryUnitID       ItemField = "secondary_unit_id"
	ItemFieldPricePerUnit          ItemField = "price_per_unit"
	ItemFieldDiscountPercent       ItemField = "discount_percent"
	ItemFieldDiscountAmount        ItemField = "discount_amount"
	ItemFieldTaxType               ItemField = "tax_type"
	ItemFieldTaxRate               ItemField = "tax_rate"
	ItemFieldTaxAmount             ItemField = "tax_amount"
	ItemFieldAmount                ItemField = "amount"
	ItemFieldSalePriceTaxInclusive ItemField = "sale_price_tax_inclusive"
	ItemFieldHSNCode               ItemField = "hsn_code"
	ItemFieldSwapUnits             ItemField = "swap_units"
)

// DocumentField names a document-level field settable through UPDATE_FIELD.
type DocumentField string

const (
	DocumentFieldKind            DocumentField = "kind"
	DocumentFieldNumber          DocumentField = "number"
	DocumentFieldDate            DocumentField = "date"
	DocumentFieldPartyID         DocumentField = "party_id"
	DocumentFieldPartyName       DocumentField = "party_name"
	DocumentFieldCountry         DocumentField = "country"
	DocumentFieldTransactionType DocumentField = "transaction_type"
	DocumentFieldPaymentType     DocumentField = "payment_type"
	DocumentFieldBankID          DocumentField = "bank_id"
	DocumentFieldChequeNumber    DocumentField = "cheque_number"
	DocumentFieldChequeDate      DocumentField = "cheque_date"
	DocumentFieldDiscountAmount  DocumentField = "discount_amount"
	DocumentFieldShipping        DocumentField = "shipping"
	DocumentFieldPackaging       DocumentField = "packaging"
	DocumentFieldAdjustment      DocumentField = "adjustment"
	DocumentFieldRoundOff        DocumentField = "round_off"
	DocumentFieldPaidAmount      DocumentField = "paid_amount"
	DocumentFieldNotes           DocumentField = "notes"
)
