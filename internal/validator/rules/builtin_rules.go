package rules

// AllBuiltinValidators returns every rule that runs without reference data. HSN rules are
// added separately once a master list is available.
func AllBuiltinValidators() []*BuiltinValidator {
	req := RequiredFieldValidators()
	pay := PaymentValidators()
	sums := MathValidators()

	all := make([]*BuiltinValidator, 0, len(req)+len(pay)+len(sums))
	all = append(all, req...)
	all = append(all, pay...)
	all = append(all, sums...)
	return all
}
