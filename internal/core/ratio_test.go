package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHorizontalAnalysis(t *testing.T) {
	cases := []struct {
		name              string
		current, previous Money
		want              Ratio
	}{
		{"growth", Reais(110), Reais(100), RatioFromFloat(10)},
		{"decline", Reais(90), Reais(100), RatioFromFloat(-10)},
		{"negative base", Reais(-90), Reais(-100), RatioFromFloat(10)},
		{"zero base", Reais(50), Money{}, UndefinedRatio()},
		{"both zero", Money{}, Money{}, UndefinedRatio()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HorizontalAnalysis(tc.current, tc.previous); !got.Equal(tc.want) {
				t.Errorf("HorizontalAnalysis(%v, %v) = %v, want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
	if got := HorizontalAnalysis(Reais(5), Money{}).Or(decimal.Zero); !got.IsZero() {
		t.Errorf("Or(0) = %v, want 0", got)
	}
}

func TestVerticalAnalysisSumsToHundred(t *testing.T) {
	parts := []Money{Reais(450000), Reais(-67500), Reais(-191250), Reais(12345)}
	var total Money
	for _, p := range parts {
		total = total.Add(p)
	}
	sum := decimal.Zero
	for _, p := range parts {
		v, ok := VerticalAnalysis(p, total).Value()
		if !ok {
			t.Fatalf("VerticalAnalysis(%v, %v) undefined", p, total)
		}
		sum = sum.Add(v)
	}
	if !sum.Round(6).Equal(hundred) {
		t.Errorf("sum of shares = %v, want 100", sum)
	}
	if VerticalAnalysis(Reais(1), Money{}).Defined() {
		t.Errorf("VerticalAnalysis(x, 0) should be undefined")
	}
}

func TestMarginPercent(t *testing.T) {
	got := MarginPercent(Reais(45441), Reais(382500))
	if f := got.Float64(); f != 11.88 {
		t.Errorf("MarginPercent() = %v, want 11.88", f)
	}
	if MarginPercent(Reais(1), Money{}).Defined() {
		t.Errorf("MarginPercent(x, 0) should be undefined")
	}
}

func TestRatioJSON(t *testing.T) {
	b, _ := json.Marshal(struct {
		A Ratio `json:"a"`
		B Ratio `json:"b"`
	}{RatioFromFloat(44.3826), UndefinedRatio()})
	if string(b) != `{"a":44.38,"b":null}` {
		t.Errorf("Marshal() = %s", b)
	}
}

func TestFormat(t *testing.T) {
	brl := []struct {
		in   Money
		want string
	}{
		{Money{Cents: 123456}, "R$ 1.234,56"},
		{Money{Cents: -123456}, "-R$ 1.234,56"},
		{Money{Cents: 5}, "R$ 0,05"},
		{Reais(1000000), "R$ 1.000.000,00"},
		{Reais(100), "R$ 100,00"},
	}
	for _, tc := range brl {
		if got := FormatBRL(tc.in); got != tc.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tc.in.Cents, got, tc.want)
		}
	}

	pct := []struct {
		in         Ratio
		pct, delta string
	}{
		{RatioFromFloat(44.38), "44.4%", "+44.4%"},
		{RatioFromFloat(-10), "-10.0%", "-10.0%"},
		{RatioFromFloat(0), "0.0%", "0.0%"},
		{UndefinedRatio(), "n/d", "n/d"},
	}
	for _, tc := range pct {
		if got := FormatPercent(tc.in); got != tc.pct {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.in, got, tc.pct)
		}
		if got := FormatDelta(tc.in); got != tc.delta {
			t.Errorf("FormatDelta(%v) = %q, want %q", tc.in, got, tc.delta)
		}
	}
}
