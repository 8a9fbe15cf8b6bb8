// Package hsnimport reads HSN/SAC rate tables from Excel workbooks.
//
// The first sheet is read. Row 1 is a header; the columns are Code, Description, GST Rate
// and an optional Condition. A rate cell may hold several rates ("5% or 18%") or "Exempt",
// producing one entry per rate.
package hsnimport

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"billbook/internal/domain"
)

const (
	colCode = iota
	colDescription
	colRate
	colCondition
)

var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// Skipped describes a data row that produced no entry.
type Skipped struct {
	Row    int
	Reason string
}

// Result is the outcome of reading a workbook.
type Result struct {
	Entries []domain.HSNEntry
	Skipped []Skipped
}

// ReadFile opens the workbook at path and parses it.
func ReadFile(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Read parses a workbook from r.
func Read(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse extracts HSN entries from the first sheet of f. Duplicate (code, rate, condition)
// rows are collapsed.
func Parse(f *excelize.File) (*Result, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	res := &Result{}
	seen := make(map[string]bool)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		code := normalizeCode(cell(row, colCode))
		if code == "" && cell(row, colRate) == "" {
			continue
		}
		if !validCode(code) {
			res.Skipped = append(res.Skipped, Skipped{Row: rowNum, Reason: fmt.Sprintf("invalid code %q", cell(row, colCode))})
			continue
		}
		rates := ParseRates(cell(row, colRate))
		if len(rates) == 0 {
			res.Skipped = append(res.Skipped, Skipped{Row: rowNum, Reason: fmt.Sprintf("no rate in %q", cell(row, colRate))})
			continue
		}

		desc := cell(row, colDescription)
		cond := cell(row, colCondition)
		for _, rate := range rates {
			key := code + "|" + strconv.FormatFloat(rate, 'f', 2, 64) + "|" + cond
			if seen[key] {
				continue
			}
			seen[key] = true
			res.Entries = append(res.Entries, domain.HSNEntry{
				Code:          code,
				Description:   desc,
				GSTRate:       rate,
				ConditionDesc: cond,
			})
		}
	}
	return res, nil
}

// ParseRates extracts GST rates from a free-text cell: "18%", "12%-18%", "Exempt", "Nil" or
// a bare number.
func ParseRates(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "exempt", "nil":
		return []float64{0}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return []float64{v}
	}

	var rates []float64
	seen := make(map[float64]bool)
	for _, m := range ratePattern.FindAllStringSubmatch(s, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || seen[v] {
			continue
		}
		seen[v] = true
		rates = append(rates, v)
	}
	return rates
}

func normalizeCode(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// validCode accepts 2 to 8 digit HSN chapters, headings and tariff items.
func validCode(code string) bool {
	if len(code) < 2 || len(code) > 8 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
