package seed

import (
	"testing"

	"financeiro/internal/core"
)

func TestDatasetValid(t *testing.T) {
	d := Default()
	if err := d.DRE.Validate(); err != nil {
		t.Fatalf("DRE.Validate() = %v", err)
	}
	if err := d.CashFlow.Validate(); err != nil {
		t.Fatalf("CashFlow.Validate() = %v", err)
	}
	if _, err := core.NewCollection(d.IncomeTypes...); err != nil {
		t.Errorf("income types: %v", err)
	}
	if _, err := core.NewCollection(d.ExpenseTypes...); err != nil {
		t.Errorf("expense types: %v", err)
	}
	for _, e := range d.Entries {
		if err := e.Validate(); err != nil {
			t.Errorf("entry %s: %v", e.ID, err)
		}
	}
	for _, g := range d.Goals {
		if err := g.Validate(); err != nil {
			t.Errorf("goal %s: %v", g.ID, err)
		}
	}
}

func TestDRESubtotals(t *testing.T) {
	dre := Default().DRE
	cases := []struct {
		id   string
		want []int64
	}{
		{"receita-bruta", []int64{450000, 485000}},
		{"receita-liquida", []int64{382500, 412250}},
		{"lucro-bruto", []int64{191250, 206125}},
		{"despesas-operacionais", []int64{-114750, -123675}},
		{"lucro-operacional", []int64{76500, 82450}},
		{"lucro-liquido", []int64{45441, 48975, 52510, 49985, 54529, 58568}},
	}
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			line, ok := dre.Line(tc.id)
			if !ok {
				t.Fatalf("Line(%s) not found", tc.id)
			}
			for i, want := range tc.want {
				p := Calendar[i]
				if got := line.Values.At(p); got != core.Reais(want) {
					t.Errorf("%s %s = %v, want %v", tc.id, p, got, core.Reais(want))
				}
			}
		})
	}
}

func TestCashFlowBalanceModes(t *testing.T) {
	cf := Default().CashFlow
	chained, err := cf.RollForward(core.BalanceChained)
	if err != nil {
		t.Fatalf("RollForward(chained) = %v", err)
	}
	external, err := cf.RollForward(core.BalanceExternal)
	if err != nil {
		t.Fatalf("RollForward(external) = %v", err)
	}

	if chained[0].Ending != core.Reais(139441) {
		t.Errorf("jan ending = %v, want %v", chained[0].Ending, core.Reais(139441))
	}
	for i := 0; i < 4; i++ {
		if chained[i].Ending != external[i].Ending {
			t.Errorf("%s: chained %v, external %v", chained[i].Period, chained[i].Ending, external[i].Ending)
		}
	}
	if chained[4].Opening != core.Reais(191911) || external[4].Opening != core.Reais(190911) {
		t.Errorf("may openings = %v / %v, want 191911 / 190911", chained[4].Opening, external[4].Opening)
	}
}
