package validator_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/validator"
	"billbook/internal/validator/rules"
)

func validDocument() *domain.Document {
	balance := 0.0
	return &domain.Document{
		ID:              uuid.New(),
		Kind:            domain.DocumentKindSale,
		Number:          "INV-001",
		Date:            "2026-01-15",
		PartyName:       "Acme Traders",
		TransactionType: domain.TransactionTypeCash,
		PaymentType:     domain.PaymentTypeCash,
		Items: []domain.DocumentItem{
			{
				ItemName: "Soap", PrimaryUnitName: "BOX", HSNCode: "34011110",
				PrimaryQuantity: 1, PricePerUnit: 100,
				TaxRate: 18, TaxAmount: 18, Amount: 118,
			},
		},
		Total:         118,
		TaxAmount:     18,
		PaidAmount:    118,
		BalanceAmount: &balance,
	}
}

func hsnLookup() *rules.HSNLookup {
	return rules.NewHSNLookup([]domain.HSNEntry{
		{Code: "34011110", Description: "Toilet soap", GSTRate: 18},
		{Code: "1006", Description: "Rice", GSTRate: 5},
		{Code: "1006", Description: "Rice", GSTRate: 0, ConditionDesc: "unbranded"},
	})
}

func TestEngine_ValidDocument(t *testing.T) {
	engine := validator.NewDefaultEngine(hsnLookup())

	report := engine.ValidateDocument(context.Background(), validDocument())

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.False(t, report.HasErrors())
	assert.Empty(t, report.Warnings)
	assert.Equal(t, report.Summary.Total, report.Summary.Passed)
	assert.NotEmpty(t, report.Results)
}

func TestEngine_MissingHeaderFields(t *testing.T) {
	doc := validDocument()
	doc.PartyName = ""
	doc.Number = "  "
	doc.Date = ""

	report := validator.NewDefaultEngine(nil).ValidateDocument(context.Background(), doc)

	assert.Equal(t, domain.ValidationStatusInvalid, report.Status)
	assert.True(t, report.HasErrors())
	assert.Contains(t, report.Errors, "party_name")
	assert.Contains(t, report.Errors, "number")
	assert.Contains(t, report.Errors, "date")
	assert.Equal(t, 3, report.Summary.Errors)
}

func TestEngine_ItemsRequireNameAndPrimaryUnit(t *testing.T) {
	doc := validDocument()
	doc.Items = append(doc.Items, domain.DocumentItem{ItemName: "Loose", PrimaryUnitName: ""})
	doc.Items[0].ItemName = ""

	report := validator.NewDefaultEngine(nil).ValidateDocument(context.Background(), doc)

	assert.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors, "items[0].item_name")
	assert.Contains(t, report.Errors, "items[1].primary_unit_name")
}

func TestEngine_NoItems(t *testing.T) {
	doc := validDocument()
	doc.Items = nil
	doc.TaxAmount = 0
	doc.Total = 0
	doc.PaidAmount = 0

	report := validator.NewDefaultEngine(nil).ValidateDocument(context.Background(), doc)

	assert.Equal(t, map[string]string{"items": "Required: At Least One Item: document has no items"}, report.Errors)
}

func TestEngine_PaymentRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Document)
		wantPaths []string
	}{
		{
			name: "credit without balance",
			mutate: func(d *domain.Document) {
				d.TransactionType = domain.TransactionTypeCredit
				d.BalanceAmount = nil
			},
			wantPaths: []string{"balance_amount"},
		},
		{
			name: "credit with balance",
			mutate: func(d *domain.Document) {
				d.TransactionType = domain.TransactionTypeCredit
			},
		},
		{
			name: "bank without account",
			mutate: func(d *domain.Document) {
				d.PaymentType = domain.PaymentTypeBank
			},
			wantPaths: []string{"bank_id"},
		},
		{
			name: "bank with account",
			mutate: func(d *domain.Document) {
				d.PaymentType = domain.PaymentTypeBank
				d.BankID = "hdfc-01"
			},
		},
		{
			name: "cheque without details",
			mutate: func(d *domain.Document) {
				d.PaymentType = domain.PaymentTypeCheque
			},
			wantPaths: []string{"cheque_number", "cheque_date"},
		},
		{
			name: "cheque missing date",
			mutate: func(d *domain.Document) {
				d.PaymentType = domain.PaymentTypeCheque
				d.ChequeNumber = "000123"
			},
			wantPaths: []string{"cheque_date"},
		},
	}

	engine := validator.NewDefaultEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			report := engine.ValidateDocument(context.Background(), doc)

			assert.Len(t, report.Errors, len(tt.wantPaths))
			for _, p := range tt.wantPaths {
				assert.Contains(t, report.Errors, p)
			}
		})
	}
}

func TestEngine_WarningsDoNotBlock(t *testing.T) {
	doc := validDocument()
	doc.RoundOff = 0.8
	doc.Total = 119
	doc.PaidAmount = 119

	report := validator.NewDefaultEngine(nil).ValidateDocument(context.Background(), doc)

	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
	assert.False(t, report.HasErrors())
	assert.Contains(t, report.Warnings, "round_off")
	assert.Equal(t, domain.FieldStatusUnsure, report.FieldStatuses["round_off"].Status)
}

func TestEngine_MathWarnings(t *testing.T) {
	doc := validDocument()
	doc.Items[0].TaxAmount = 5
	doc.TaxAmount = 40
	doc.PaidAmount = 50

	report := validator.NewDefaultEngine(nil).ValidateDocument(context.Background(), doc)

	assert.False(t, report.HasErrors())
	assert.Contains(t, report.Warnings, "items[0].tax_amount")
	assert.Contains(t, report.Warnings, "tax_amount")
	assert.Contains(t, report.Warnings, "paid_amount")
}

func TestEngine_HSNRules(t *testing.T) {
	engine := validator.NewDefaultEngine(hsnLookup())

	unknown := validDocument()
	unknown.Items[0].HSNCode = "99999999"
	report := engine.ValidateDocument(context.Background(), unknown)
	assert.Contains(t, report.Warnings, "items[0].hsn_code")
	assert.NotContains(t, report.Warnings, "items[0].tax_rate")

	wrongRate := validDocument()
	wrongRate.Items[0].TaxRate = 12
	wrongRate.Items[0].TaxAmount = 12
	wrongRate.Items[0].Amount = 112
	wrongRate.TaxAmount = 12
	wrongRate.Total = 112
	wrongRate.PaidAmount = 112
	report = engine.ValidateDocument(context.Background(), wrongRate)
	require.Contains(t, report.Warnings, "items[0].tax_rate")
	assert.Equal(t, domain.ValidationStatusWarning, report.Status)
}

func TestNewDefaultEngine_SkipsHSNRulesWithoutMaster(t *testing.T) {
	doc := validDocument()
	doc.Items[0].HSNCode = "99999999"

	report := validator.NewDefaultEngine(rules.NewHSNLookup(nil)).ValidateDocument(context.Background(), doc)

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	for _, r := range report.Results {
		assert.NotContains(t, r.RuleKey, "hsn.")
	}
}

func TestRegistry_AllIsSortedByKey(t *testing.T) {
	registry := validator.NewRegistry()
	for _, v := range rules.AllBuiltinValidators() {
		registry.Register(v)
	}

	all := registry.All()
	require.Len(t, all, registry.Len())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].RuleKey(), all[i].RuleKey())
	}
	assert.NotNil(t, registry.Get("req.document.party_name"))
	assert.Nil(t, registry.Get("nope"))
	assert.Equal(t, []string{"pay.bank.bank_id", "pay.cheque.details", "pay.credit.balance"}, registry.Keys("pay."))
	assert.Len(t, registry.Keys(""), registry.Len())
}

func TestRegistry_RegisterReplacesSameKey(t *testing.T) {
	builtins := rules.AllBuiltinValidators()
	registry := validator.NewRegistry(builtins[0], builtins[1])
	registry.Register(builtins[0])

	assert.Equal(t, 2, registry.Len())
	assert.Len(t, registry.All(), 2)
}
