package rules

import (
	"context"

	"billbook/internal/domain"
)

// PaymentValidators returns the checks tied to the transaction and payment type.
// Each rule passes trivially when its precondition does not hold.
func PaymentValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		{
			key: "pay.credit.balance", name: "Payment: Credit Balance",
			ruleType: domain.ValidationRulePayment, sev: domain.ValidationSeverityError,
			fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
				if doc.TransactionType != domain.TransactionTypeCredit {
					return nil
				}
				passed := doc.BalanceAmount != nil
				msg := "Payment: Credit Balance: balance_amount is set"
				actual := "undefined"
				if passed {
					actual = fmtf(*doc.BalanceAmount)
				} else {
					msg = "Payment: Credit Balance: credit transactions require a balance amount"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "balance_amount",
					ExpectedValue: "defined balance amount", ActualValue: actual, Message: msg,
				}}
			},
		},
		{
			key: "pay.bank.bank_id", name: "Payment: Bank Account",
			ruleType: domain.ValidationRulePayment, sev: domain.ValidationSeverityError,
			fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
				if doc.PaymentType != domain.PaymentTypeBank {
					return nil
				}
				return []ValidationResult{presence("Payment: Bank Account", string(domain.DocumentFieldBankID), doc.BankID)}
			},
		},
		{
			key: "pay.cheque.details", name: "Payment: Cheque Details",
			ruleType: domain.ValidationRulePayment, sev: domain.ValidationSeverityError,
			fn: func(_ context.Context, doc *domain.Document) []ValidationResult {
				if doc.PaymentType != domain.PaymentTypeCheque {
					return nil
				}
				return []ValidationResult{
					presence("Payment: Cheque Details", string(domain.DocumentFieldChequeNumber), doc.ChequeNumber),
					presence("Payment: Cheque Details", string(domain.DocumentFieldChequeDate), doc.ChequeDate),
				}
			},
		},
	}
}
