package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"1.234,56", 123456, true},
		{"12.345,6", 1234560, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(Reais(1234).Add(Money{Cents: 5}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != "1234.05" {
		t.Errorf("Marshal() = %s, want 1234.05", b)
	}

	cases := []struct {
		in   string
		want int64
	}{
		{`12.34`, 1234},
		{`"12.34"`, 1234},
		{`"12,34"`, 1234},
		{`"1.234,56"`, 123456},
		{`-5`, -500},
		{`0.005`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var m Money
			if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if m.Cents != tc.want {
				t.Errorf("Unmarshal() = %d, want %d", m.Cents, tc.want)
			}
		})
	}

	var m Money
	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Errorf("Unmarshal(abc) expected error")
	}
}
