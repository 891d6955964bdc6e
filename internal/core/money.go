// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and real representations.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive cents.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
//	ParseDecimalToCents("12.344") -> 1234, nil (rounds down)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = normalizeDecimal(s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// normalizeDecimal turns Brazilian input ("1.234,56") into dot notation.
func normalizeDecimal(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
}

// Reais builds Money from a whole-real amount.
func Reais(v int64) Money {
	return Money{Cents: v * 100}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }
func (m Money) Neg() Money        { return Money{Cents: -m.Cents} }
func (m Money) IsZero() bool      { return m.Cents == 0 }

func (m Money) Abs() Money {
	if m.Cents < 0 {
		return m.Neg()
	}
	return m
}

// Decimal returns the amount in reais as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float returns the real value as a float64 for display and spreadsheet cells.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON encodes money as a decimal number of reais.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string in reais.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		raw = json.Number(strings.TrimSpace(s))
	}
	d, err := decimal.NewFromString(normalizeDecimal(raw.String()))
	if err != nil {
		return ErrInvalidAmount
	}
	m.Cents = d.Shift(2).Round(0).IntPart()
	return nil
}
