package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ratio is a percentage that may be undefined, e.g. when the base is zero.
type Ratio struct {
	value   decimal.Decimal
	defined bool
}

func DefinedRatio(d decimal.Decimal) Ratio {
	return Ratio{value: d, defined: true}
}

func UndefinedRatio() Ratio {
	return Ratio{}
}

// RatioFromFloat is a convenience for tests and thresholds.
func RatioFromFloat(f float64) Ratio {
	return DefinedRatio(decimal.NewFromFloat(f))
}

func (r Ratio) Defined() bool {
	return r.defined
}

// Value returns the percentage and whether it is defined.
func (r Ratio) Value() (decimal.Decimal, bool) {
	return r.value, r.defined
}

// Or returns the value, or fallback when undefined.
func (r Ratio) Or(fallback decimal.Decimal) decimal.Decimal {
	if !r.defined {
		return fallback
	}
	return r.value
}

// Float64 returns the value rounded to two places, zero when undefined.
func (r Ratio) Float64() float64 {
	f, _ := r.Or(decimal.Zero).Round(2).Float64()
	return f
}

// Mul scales a defined ratio by factor.
func (r Ratio) Mul(factor decimal.Decimal) Ratio {
	if !r.defined {
		return r
	}
	return DefinedRatio(r.value.Mul(factor))
}

// Abs returns the magnitude of a defined ratio.
func (r Ratio) Abs() Ratio {
	if !r.defined {
		return r
	}
	return DefinedRatio(r.value.Abs())
}

// Equal compares two ratios; undefined ratios are equal to each other.
func (r Ratio) Equal(o Ratio) bool {
	if r.defined != o.defined {
		return false
	}
	return !r.defined || r.value.Equal(o.value)
}

func (r Ratio) String() string {
	if !r.defined {
		return "undefined"
	}
	return r.value.String()
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value.Round(2).InexactFloat64())
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UndefinedRatio()
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*r = DefinedRatio(d)
	return nil
}

// HorizontalAnalysis is the percentage change from previous to current,
// relative to the magnitude of previous. Undefined when previous is zero.
func HorizontalAnalysis(current, previous Money) Ratio {
	if previous.IsZero() {
		return UndefinedRatio()
	}
	diff := current.Sub(previous).Decimal()
	return DefinedRatio(diff.Div(previous.Abs().Decimal()).Mul(hundred))
}

// VerticalAnalysis is value as a percentage of base. Undefined when base is zero.
func VerticalAnalysis(value, base Money) Ratio {
	return percentOf(value, base)
}

// MarginPercent is numerator over denominator in percent.
func MarginPercent(numerator, denominator Money) Ratio {
	return percentOf(numerator, denominator)
}

func percentOf(num, den Money) Ratio {
	if den.IsZero() {
		return UndefinedRatio()
	}
	return DefinedRatio(num.Decimal().Div(den.Decimal()).Mul(hundred))
}
