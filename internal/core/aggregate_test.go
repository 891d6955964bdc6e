package core

import (
	"errors"
	"testing"
)

func vals(pairs ...any) Values {
	out := Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[Period(pairs[i].(string))] = Reais(int64(pairs[i+1].(int)))
	}
	return out
}

func revenueTree() LineItem {
	return LineItem{
		ID: "receita-bruta", Name: "Receita Bruta", Kind: KindCategory, Sign: SignAddition,
		Children: []LineItem{
			{ID: "servicos", Kind: KindCategory, Sign: SignAddition, Children: []LineItem{
				{ID: "abc", Kind: KindCounterparty, Sign: SignAddition, Values: vals("2024-01", 50000, "2024-02", 52000)},
				{ID: "xyz", Kind: KindCounterparty, Sign: SignAddition, Values: vals("2024-01", 30000)},
			}},
			{ID: "produtos", Kind: KindDetail, Sign: SignAddition, Values: vals("2024-01", 120000, "2024-02", 130000)},
		},
	}
}

func TestRollUp(t *testing.T) {
	got := RollUp(revenueTree())
	if got.At("2024-01") != Reais(200000) {
		t.Errorf("RollUp() jan = %v, want %v", got.At("2024-01"), Reais(200000))
	}
	if got.At("2024-02") != Reais(182000) {
		t.Errorf("RollUp() fev = %v, want %v", got.At("2024-02"), Reais(182000))
	}
	if !got.At("2024-03").IsZero() {
		t.Errorf("RollUp() mar = %v, want zero", got.At("2024-03"))
	}
}

func TestRollUpOrderIndependent(t *testing.T) {
	tree := revenueTree()
	reversed := tree
	reversed.Children = []LineItem{tree.Children[1], tree.Children[0]}
	a, b := RollUp(tree), RollUp(reversed)
	for _, p := range a.Plus(b).Periods() {
		if a.At(p) != b.At(p) {
			t.Errorf("RollUp() %s = %v, reversed %v", p, a.At(p), b.At(p))
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	once := Resolve(revenueTree())
	twice := Resolve(once)
	once.Walk(func(n LineItem, _ int) {
		m, ok := twice.Find(n.ID)
		if !ok {
			t.Fatalf("Find(%s) missing after second Resolve", n.ID)
		}
		for _, p := range n.Values.Periods() {
			if n.Values.At(p) != m.Values.At(p) {
				t.Errorf("%s %s = %v, want %v", n.ID, p, m.Values.At(p), n.Values.At(p))
			}
		}
	})
	if len(CheckConsistency(once)) != 0 {
		t.Errorf("CheckConsistency(resolved) = %v, want none", CheckConsistency(once))
	}
}

func TestRollUpDoesNotMutate(t *testing.T) {
	tree := revenueTree()
	out := RollUp(tree.Children[1])
	out["2024-01"] = Reais(1)
	if tree.Children[1].Values.At("2024-01") != Reais(120000) {
		t.Errorf("RollUp() shares the leaf map")
	}
}

func TestCheckConsistency(t *testing.T) {
	tree := revenueTree()
	tree.Values = vals("2024-01", 200000, "2024-02", 180000)
	drifts := CheckConsistency(tree)
	if len(drifts) != 1 {
		t.Fatalf("CheckConsistency() = %v, want 1 drift", drifts)
	}
	d := drifts[0]
	if d.ID != "receita-bruta" || d.Period != "2024-02" || d.Authored != Reais(180000) || d.Derived != Reais(182000) {
		t.Errorf("CheckConsistency() = %+v", d)
	}
}

func TestSumByPeriod(t *testing.T) {
	rows := []LineItem{
		{ID: "a", Values: vals("2024-01", 44441)},
		{ID: "b", Values: vals("2024-01", 12000)},
		{ID: "c", Sign: SignSubtraction, Values: vals("2024-01", -15000)},
	}
	if got := SumByPeriod(rows, "2024-01"); got != Reais(41441) {
		t.Errorf("SumByPeriod() = %v, want %v", got, Reais(41441))
	}
	if got := SumByPeriod(nil, "2024-01"); !got.IsZero() {
		t.Errorf("SumByPeriod(nil) = %v, want zero", got)
	}
}

func TestRunningBalance(t *testing.T) {
	cal := Calendar{"2024-01", "2024-02"}
	deltas := map[Period]Money{
		"2024-01": Reais(24441).Sub(Reais(35000)).Sub(Reais(20000)),
		"2024-02": Reais(1000),
	}
	delta := func(p Period) Money { return deltas[p] }
	opening := vals("2024-01", 150000, "2024-02", 500)

	chained, err := RunningBalance(opening, cal, delta, BalanceChained)
	if err != nil {
		t.Fatalf("RunningBalance() error = %v", err)
	}
	if chained.At("2024-01") != Reais(119441) {
		t.Errorf("ending jan = %v, want %v", chained.At("2024-01"), Reais(119441))
	}
	if chained.At("2024-02") != Reais(120441) {
		t.Errorf("chained ending fev = %v, want %v", chained.At("2024-02"), Reais(120441))
	}

	external, err := RunningBalance(opening, cal, delta, BalanceExternal)
	if err != nil {
		t.Fatalf("RunningBalance() error = %v", err)
	}
	if external.At("2024-02") != Reais(1500) {
		t.Errorf("external ending fev = %v, want %v", external.At("2024-02"), Reais(1500))
	}
}

func TestRollForwardErrors(t *testing.T) {
	zero := func(Period) Money { return Money{} }
	if _, err := RollForward(nil, Calendar{"2024-01"}, zero, "weird"); !errors.Is(err, ErrInvalidBalanceMode) {
		t.Errorf("RollForward(weird) = %v, want %v", err, ErrInvalidBalanceMode)
	}
	if _, err := RollForward(nil, Calendar{"2024-02", "2024-01"}, zero, BalanceChained); !errors.Is(err, ErrInvalidCalendar) {
		t.Errorf("RollForward(unordered) = %v, want %v", err, ErrInvalidCalendar)
	}
	rows, err := RollForward(nil, nil, zero, BalanceChained)
	if err != nil || len(rows) != 0 {
		t.Errorf("RollForward(empty) = %v, %v", rows, err)
	}
}

func TestLineItemValidate(t *testing.T) {
	cases := []struct {
		name string
		item LineItem
		want error
	}{
		{"empty id", LineItem{}, ErrEmptyID},
		{"duplicate", LineItem{ID: "a", Children: []LineItem{{ID: "b"}, {ID: "b"}}}, ErrDuplicateID},
		{"positive subtraction", LineItem{ID: "a", Sign: SignSubtraction, Values: vals("2024-01", 1)}, ErrSignMismatch},
		{"subtotal with children", LineItem{ID: "a", Kind: KindSubtotal, Children: []LineItem{{ID: "b"}}}, ErrSubtotalTree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.item.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
	if err := revenueTree().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestApplySign(t *testing.T) {
	if got := ApplySign(SignSubtraction, Reais(100)); got != Reais(-100) {
		t.Errorf("ApplySign(subtraction, 100) = %v", got)
	}
	if got := ApplySign(SignSubtraction, Reais(-100)); got != Reais(-100) {
		t.Errorf("ApplySign(subtraction, -100) = %v", got)
	}
	if got := ApplySign(SignAddition, Reais(100)); got != Reais(100) {
		t.Errorf("ApplySign(addition, 100) = %v", got)
	}
}
