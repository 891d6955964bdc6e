package core

import (
	"strconv"
	"strings"
)

const notDefined = "n/d"

// FormatBRL renders m as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(m Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("R$ ")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// FormatPercent renders a ratio with one decimal, e.g. "44.4%".
func FormatPercent(r Ratio) string {
	v, ok := r.Value()
	if !ok {
		return notDefined
	}
	return v.StringFixed(1) + "%"
}

// FormatDelta is FormatPercent with an explicit plus sign for positive values.
func FormatDelta(r Ratio) string {
	v, ok := r.Value()
	if !ok {
		return notDefined
	}
	s := v.StringFixed(1) + "%"
	if v.Round(1).IsPositive() {
		return "+" + s
	}
	return s
}
