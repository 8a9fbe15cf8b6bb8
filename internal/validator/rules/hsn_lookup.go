package rules

import (
	"math"

	"billbook/internal/domain"
)

// HSNRateEntry holds a valid GST rate and optional condition for an HSN code.
type HSNRateEntry struct {
	Rate          float64
	ConditionDesc string
}

// HSNLookup answers HSN existence and rate questions from an in-memory master list.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNRateEntry
}

// NewHSNLookup indexes entries by code. Codes with several rates keep all of them.
func NewHSNLookup(entries []domain.HSNEntry) *HSNLookup {
	m := make(map[string][]HSNRateEntry, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], HSNRateEntry{
			Rate:          e.GSTRate,
			ConditionDesc: e.ConditionDesc,
		})
	}
	return &HSNLookup{byCode: m}
}

// Len is the number of distinct codes loaded.
func (h *HSNLookup) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byCode)
}

// Exists reports whether code, or its 6- or 4-digit prefix, is in the master list.
func (h *HSNLookup) Exists(code string) bool {
	return len(h.Rates(code)) > 0
}

// Rates returns the valid rate entries for code, falling back from 8 to 6 to 4 digits.
func (h *HSNLookup) Rates(code string) []HSNRateEntry {
	if h.Len() == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// RateMatches checks whether rate is one of the valid GST rates for code.
func (h *HSNLookup) RateMatches(code string, rate float64) (matched bool, validRates []HSNRateEntry) {
	validRates = h.Rates(code)
	if len(validRates) == 0 {
		return false, nil
	}
	for idx := range validRates {
		if math.Abs(validRates[idx].Rate-rate) < 0.01 {
			return true, validRates
		}
	}
	return false, validRates
}
