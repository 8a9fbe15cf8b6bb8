package pricing

import (
	"regexp"
	"strconv"

	"billbook/internal/domain"
)

// percentToken matches the first "<number>%" in a tax-rate label, e.g. "GST@18%" or "IGST 0.25%".
var percentToken = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// noneTaxCode is the code tax-rate tables use for "no tax".
const noneTaxCode = "None"

// TaxRateTable holds tax-rate options keyed by country/region code.
type TaxRateTable map[string][]domain.TaxRateOption

// ResolveTaxRate maps a tax-type code to its percentage. Empty, "None" and unknown codes,
// and labels without a percentage, resolve to 0.
func ResolveTaxRate(code string, options []domain.TaxRateOption) float64 {
	if code == "" || code == noneTaxCode {
		return 0
	}
	for i := range options {
		if options[i].Code != code {
			continue
		}
		m := percentToken.FindStringSubmatch(options[i].Label)
		if m == nil {
			return 0
		}
		pct, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		return pct
	}
	return 0
}

// Resolve looks up code in the table for country.
func (t TaxRateTable) Resolve(country, code string) float64 {
	return ResolveTaxRate(code, t[country])
}
