package core

import (
	"errors"
	"testing"
)

func paymentMethods(t *testing.T) Collection[PaymentMethod] {
	t.Helper()
	c, err := NewCollection(
		PaymentMethod{ID: "pm1", Name: "Boleto", Builtin: true},
		PaymentMethod{ID: "pm3", Name: "Pix", Builtin: true},
		PaymentMethod{ID: "pm9", Name: "Cheque"},
	)
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}
	return c
}

func TestCollectionRemove(t *testing.T) {
	c := paymentMethods(t)

	if _, err := c.Remove("pm1"); !errors.Is(err, ErrBuiltinEntry) {
		t.Errorf("Remove(builtin) = %v, want %v", err, ErrBuiltinEntry)
	}
	if _, err := c.Remove("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(missing) = %v, want %v", err, ErrNotFound)
	}

	next, err := c.Remove("pm9")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if next.Len() != 2 || c.Len() != 3 {
		t.Errorf("Remove() lens = %d, %d; want 2, 3", next.Len(), c.Len())
	}
	if _, ok := next.Find("pm9"); ok {
		t.Errorf("Find(pm9) after Remove should fail")
	}
}

func TestCollectionAddUpdate(t *testing.T) {
	c := paymentMethods(t)

	if _, err := c.Add(PaymentMethod{ID: "pm1", Name: "Outro"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add(duplicate) = %v, want %v", err, ErrDuplicateID)
	}
	if _, err := c.Add(PaymentMethod{ID: "pm5", Name: " "}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Add(empty name) = %v, want %v", err, ErrEmptyName)
	}

	updated, err := c.Update(PaymentMethod{ID: "pm9", Name: "Cheque pré-datado"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := updated.Find("pm9")
	orig, _ := c.Find("pm9")
	if got.Name != "Cheque pré-datado" || orig.Name != "Cheque" {
		t.Errorf("Update() = %q, original %q", got.Name, orig.Name)
	}
	if _, err := c.Update(PaymentMethod{ID: "x", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) = %v, want %v", err, ErrNotFound)
	}
}

func TestEntryTypeSubcategories(t *testing.T) {
	et := EntryType{ID: "1", Flow: Expense, Name: "Custos Variáveis", Subcategories: []Subcategory{{ID: "1-1", Name: "Matéria-prima"}}}

	renamed := et.WithSubcategory(Subcategory{ID: "1-1", Name: "Insumos"})
	if renamed.Subcategories[0].Name != "Insumos" || et.Subcategories[0].Name != "Matéria-prima" {
		t.Errorf("WithSubcategory() rename leaked: %v / %v", renamed.Subcategories, et.Subcategories)
	}

	added := et.WithSubcategory(Subcategory{ID: "1-2", Name: "Embalagem"})
	if len(added.Subcategories) != 2 {
		t.Errorf("WithSubcategory() = %v, want 2 entries", added.Subcategories)
	}

	removed, err := added.WithoutSubcategory("1-1")
	if err != nil || len(removed.Subcategories) != 1 || removed.Subcategories[0].ID != "1-2" {
		t.Errorf("WithoutSubcategory() = %v, %v", removed.Subcategories, err)
	}
	if _, err := et.WithoutSubcategory("9-9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("WithoutSubcategory(missing) = %v, want %v", err, ErrNotFound)
	}
}

func TestCounterpartyValidate(t *testing.T) {
	c := Counterparty{ID: "c1", Role: RoleClient, Kind: PersonLegal, Name: "Cliente ABC"}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	c.Role = "partner"
	if err := c.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidRole)
	}
	c.Role, c.Kind = RoleSupplier, "x"
	if err := c.Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Validate() = %v, want %v", err, ErrInvalidKind)
	}
}

func TestGroupByDay(t *testing.T) {
	day := NewDate(2026, 2, 2)
	entries := []Entry{
		{ID: "a", Flow: Income, Amount: Reais(5000), Date: day},
		{ID: "b", Flow: Income, Amount: Reais(3500), Date: day},
		{ID: "c", Flow: Expense, Amount: Reais(2500), Date: day},
		{ID: "d", Flow: Expense, Amount: Reais(100), Date: NewDate(2026, 1, 31)},
		{ID: "e", Flow: Income, Amount: Reais(100), Date: NewDate(2026, 3, 1)},
	}
	days := GroupByDay(entries, NewDate(2026, 1, 31), NewDate(2026, 2, 28))
	if len(days) != 2 {
		t.Fatalf("GroupByDay() = %d days, want 2", len(days))
	}
	if days[0].Date.String() != "2026-01-31" {
		t.Errorf("GroupByDay()[0] = %s, want oldest first", days[0].Date)
	}
	d := days[1]
	if d.Income != Reais(8500) || d.Expense != Reais(2500) || d.Balance != Reais(6000) || len(d.Entries) != 3 {
		t.Errorf("GroupByDay()[1] = %+v", d)
	}
	total := TotalFlow(days)
	if total.Balance != Reais(5900) {
		t.Errorf("TotalFlow() balance = %v, want %v", total.Balance, Reais(5900))
	}

	if open := GroupByDay(entries, NewDate(2026, 2, 1), Date{}); len(open) != 2 {
		t.Errorf("GroupByDay(open end) = %d days, want 2", len(open))
	}
	if all := GroupByDay(entries, Date{}, Date{}); len(all) != 3 {
		t.Errorf("GroupByDay(unbounded) = %d days, want 3", len(all))
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name           string
		flow           Flow
		goal, realized Money
		want           Status
	}{
		{"income below", Income, Reais(20000), Reais(8500), StatusBelow},
		{"income above", Income, Reais(1000), Reais(1200), StatusAbove},
		{"income without goal", Income, Money{}, Reais(1200), StatusBelow},
		{"expense within", Expense, Reais(1000), Reais(1000), StatusWithin},
		{"expense attention", Expense, Reais(1000), Reais(1100), StatusAttention},
		{"expense exceeded", Expense, Reais(1000), Reais(1200), StatusExceeded},
		{"expense without goal", Expense, Money{}, Reais(300), StatusExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoalProgress(tt.flow, "1", "Aluguel", tt.goal, tt.realized)
			if g.Status != tt.want {
				t.Errorf("NewGoalProgress().Status = %s, want %s", g.Status, tt.want)
			}
		})
	}

	g := NewGoalProgress(Income, "1", "Receita com Produtos", Reais(20000), Reais(8500))
	if g.Attainment.Float64() != 42.5 {
		t.Errorf("Attainment = %v, want 42.5", g.Attainment.Float64())
	}
	if g = NewGoalProgress(Expense, "3", "Aluguel", Money{}, Reais(1200)); g.Attainment.Defined() {
		t.Errorf("NewGoalProgress(no goal).Attainment = %v, want undefined", g.Attainment)
	}
}
