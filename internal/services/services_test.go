package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/ports/memory"
)

type change struct {
	entity string
	op     amqp.Op
	id     string
}

// recorder collects published changes.
type recorder struct {
	mu      sync.Mutex
	changes []change
	err     error
}

func (r *recorder) PublishChange(_ context.Context, entity string, op amqp.Op, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change{entity, op, id})
	return r.err
}

func (r *recorder) last() change {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.changes) == 0 {
		return change{}
	}
	return r.changes[len(r.changes)-1]
}

func TestMultiPublisher(t *testing.T) {
	if MultiPublisher(nil, nil) != nil {
		t.Error("MultiPublisher(nil, nil) should be nil")
	}
	if FromAMQP(nil) != nil {
		t.Error("FromAMQP(nil) should be nil")
	}

	a := &recorder{}
	b := &recorder{err: errors.New("broker down")}
	calls := 0
	p := MultiPublisher(a, nil, b, PublisherFunc(func(context.Context, string, amqp.Op, string) error {
		calls++
		return nil
	}))
	err := p.PublishChange(context.Background(), amqp.EntityEntry, amqp.OpCreate, "e1")
	if err == nil {
		t.Error("PublishChange() should report the failing publisher")
	}
	if len(a.changes) != 1 || len(b.changes) != 1 || calls != 1 {
		t.Errorf("publishers called %d, %d, %d times; want 1 each", len(a.changes), len(b.changes), calls)
	}
}

func TestRegistryService_EntryTypes(t *testing.T) {
	ctx := context.Background()
	pub := &recorder{}
	s := NewRegistryService(memory.NewDefault(), pub)

	created, err := s.CreateEntryType(ctx, core.EntryType{
		ID:            "ignored",
		Flow:          core.Expense,
		Name:          "  Marketing ",
		Builtin:       true,
		Subcategories: []core.Subcategory{{Name: "Anúncios"}, {Name: "Eventos"}},
	})
	if err != nil {
		t.Fatalf("CreateEntryType() = %v", err)
	}
	if created.ID == "ignored" || created.ID == "" {
		t.Errorf("CreateEntryType() ID = %q, want a generated id", created.ID)
	}
	if created.Builtin {
		t.Error("CreateEntryType() should never create built-in types")
	}
	if created.Name != "Marketing" {
		t.Errorf("CreateEntryType() Name = %q, want Marketing", created.Name)
	}
	if created.Subcategories[0].ID == "" || created.Subcategories[0].ID == created.Subcategories[1].ID {
		t.Errorf("subcategory ids = %q, %q; want distinct ids", created.Subcategories[0].ID, created.Subcategories[1].ID)
	}
	if got := pub.last(); got != (change{amqp.EntityEntryType, amqp.OpCreate, created.ID}) {
		t.Errorf("published %+v", got)
	}

	withSub, err := s.AddSubcategory(ctx, core.Expense, created.ID, "Patrocínio")
	if err != nil {
		t.Fatalf("AddSubcategory() = %v", err)
	}
	if len(withSub.Subcategories) != 3 {
		t.Fatalf("AddSubcategory() = %d subcategories, want 3", len(withSub.Subcategories))
	}
	subID := withSub.Subcategories[2].ID

	renamed, err := s.RenameSubcategory(ctx, core.Expense, created.ID, subID, "Patrocínios")
	if err != nil {
		t.Fatalf("RenameSubcategory() = %v", err)
	}
	if sub, _ := renamed.Subcategory(subID); sub.Name != "Patrocínios" {
		t.Errorf("RenameSubcategory() name = %q, want Patrocínios", sub.Name)
	}
	if _, err := s.RenameSubcategory(ctx, core.Expense, created.ID, "missing", "x"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("RenameSubcategory(missing) = %v, want %v", err, core.ErrNotFound)
	}

	trimmed, err := s.DeleteSubcategory(ctx, core.Expense, created.ID, subID)
	if err != nil {
		t.Fatalf("DeleteSubcategory() = %v", err)
	}
	if len(trimmed.Subcategories) != 2 {
		t.Errorf("DeleteSubcategory() = %d subcategories, want 2", len(trimmed.Subcategories))
	}
	if _, err := s.DeleteSubcategory(ctx, core.Expense, created.ID, subID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteSubcategory(twice) = %v, want %v", err, core.ErrNotFound)
	}

	builtin, err := s.RenameEntryType(ctx, core.Income, "1", "Vendas")
	if err != nil {
		t.Fatalf("RenameEntryType(builtin) = %v", err)
	}
	if !builtin.Builtin || builtin.Name != "Vendas" {
		t.Errorf("RenameEntryType() = %+v, want built-in Vendas", builtin)
	}
	if err := s.DeleteEntryType(ctx, core.Income, "1"); !errors.Is(err, core.ErrBuiltinEntry) {
		t.Errorf("DeleteEntryType(builtin) = %v, want %v", err, core.ErrBuiltinEntry)
	}
	if err := s.DeleteEntryType(ctx, core.Expense, created.ID); err != nil {
		t.Errorf("DeleteEntryType() = %v", err)
	}
	if _, err := s.EntryType(ctx, core.Expense, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("EntryType(deleted) = %v, want %v", err, core.ErrNotFound)
	}
	if _, err := s.EntryTypes(ctx, "both"); !errors.Is(err, core.ErrInvalidFlow) {
		t.Errorf("EntryTypes(both) = %v, want %v", err, core.ErrInvalidFlow)
	}
}

func TestRegistryService_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewRegistryService(memory.NewDefault(), nil)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"entry type without name", func() error {
			_, err := s.CreateEntryType(ctx, core.EntryType{Flow: core.Income, Name: "  "})
			return err
		}, core.ErrEmptyName},
		{"entry type without flow", func() error {
			_, err := s.CreateEntryType(ctx, core.EntryType{Name: "X"})
			return err
		}, core.ErrInvalidFlow},
		{"counterparty role", func() error {
			_, err := s.CreateCounterparty(ctx, core.Counterparty{Role: "partner", Kind: core.PersonLegal, Name: "X"})
			return err
		}, core.ErrInvalidRole},
		{"counterparty kind", func() error {
			_, err := s.CreateCounterparty(ctx, core.Counterparty{Role: core.RoleClient, Kind: "x", Name: "X"})
			return err
		}, core.ErrInvalidKind},
		{"missing counterparty", func() error {
			_, err := s.UpdateCounterparty(ctx, core.Counterparty{ID: "nope", Role: core.RoleClient, Kind: core.PersonLegal, Name: "X"})
			return err
		}, core.ErrNotFound},
		{"project without name", func() error {
			_, err := s.CreateProject(ctx, core.Project{})
			return err
		}, core.ErrEmptyName},
		{"missing payment method", func() error {
			_, err := s.UpdatePaymentMethod(ctx, core.PaymentMethod{ID: "nope", Name: "X"})
			return err
		}, core.ErrNotFound},
		{"builtin payment method delete", func() error {
			return s.DeletePaymentMethod(ctx, "pm1")
		}, core.ErrBuiltinEntry},
		{"missing project delete", func() error {
			return s.DeleteProject(ctx, "nope")
		}, core.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegistryService_CRUD(t *testing.T) {
	ctx := context.Background()
	pub := &recorder{err: errors.New("broker down")}
	s := NewRegistryService(memory.NewDefault(), pub)

	c, err := s.CreateCounterparty(ctx, core.Counterparty{Role: core.RoleSupplier, Kind: core.PersonLegal, Name: "Fornecedor 03"})
	if err != nil {
		t.Fatalf("CreateCounterparty() = %v", err)
	}
	c.City = "Curitiba"
	if _, err := s.UpdateCounterparty(ctx, c); err != nil {
		t.Fatalf("UpdateCounterparty() = %v", err)
	}
	suppliers, _ := s.Counterparties(ctx, core.RoleSupplier)
	if len(suppliers) != 3 || suppliers[2].City != "Curitiba" {
		t.Errorf("Counterparties(supplier) = %+v", suppliers)
	}
	if err := s.DeleteCounterparty(ctx, core.RoleClient, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteCounterparty(wrong role) = %v, want %v", err, core.ErrNotFound)
	}
	if err := s.DeleteCounterparty(ctx, core.RoleSupplier, c.ID); err != nil {
		t.Errorf("DeleteCounterparty() = %v", err)
	}

	p, err := s.CreateProject(ctx, core.Project{Name: "Projeto C", Consolidated: true})
	if err != nil {
		t.Fatalf("CreateProject() = %v", err)
	}
	p.Name = "Projeto C2"
	if _, err := s.UpdateProject(ctx, p); err != nil {
		t.Errorf("UpdateProject() = %v", err)
	}
	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Errorf("DeleteProject() = %v", err)
	}

	m, err := s.UpdatePaymentMethod(ctx, core.PaymentMethod{ID: "pm3", Name: "PIX"})
	if err != nil {
		t.Fatalf("UpdatePaymentMethod() = %v", err)
	}
	if !m.Builtin {
		t.Error("UpdatePaymentMethod() should keep the built-in flag")
	}
	custom, err := s.CreatePaymentMethod(ctx, core.PaymentMethod{Name: "Cartão", Builtin: true})
	if err != nil {
		t.Fatalf("CreatePaymentMethod() = %v", err)
	}
	if custom.Builtin {
		t.Error("CreatePaymentMethod() should never create built-in methods")
	}
	if err := s.DeletePaymentMethod(ctx, custom.ID); err != nil {
		t.Errorf("DeletePaymentMethod() = %v", err)
	}

	// Publishing failures never undo a stored change.
	if len(pub.changes) != 9 {
		t.Errorf("published %d changes, want 9", len(pub.changes))
	}
}

func TestLedgerService_CreateEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDefault()
	pub := &recorder{}
	s := NewLedgerService(store, store, pub)

	valid := core.Entry{
		Flow:            core.Income,
		TypeID:          "1",
		SubcategoryID:   "1-3",
		Description:     "Venda de Notebook",
		Amount:          core.Reais(4200),
		Date:            core.NewDate(2026, 3, 10),
		CounterpartyID:  "c2",
		ProjectID:       "p1",
		PaymentMethodID: "pm3",
	}

	tests := []struct {
		name   string
		modify func(e *core.Entry)
		want   error
	}{
		{"valid", func(*core.Entry) {}, nil},
		{"empty description", func(e *core.Entry) { e.Description = " " }, core.ErrEmptyDescription},
		{"zero amount", func(e *core.Entry) { e.Amount = core.Money{} }, core.ErrInvalidAmount},
		{"unknown type", func(e *core.Entry) { e.TypeID = "42" }, ErrInvalidReference},
		{"type of other flow", func(e *core.Entry) { e.TypeID = "9"; e.SubcategoryID = "" }, ErrInvalidReference},
		{"subcategory of other type", func(e *core.Entry) { e.SubcategoryID = "2-1" }, ErrInvalidReference},
		{"supplier on income", func(e *core.Entry) { e.CounterpartyID = "s1" }, ErrInvalidReference},
		{"unknown project", func(e *core.Entry) { e.ProjectID = "p9" }, ErrInvalidReference},
		{"unknown payment method", func(e *core.Entry) { e.PaymentMethodID = "pm9" }, ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)
			got, err := s.CreateEntry(ctx, e)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CreateEntry() = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				return
			}
			if got.ID == "" {
				t.Error("CreateEntry() should assign an id")
			}
			if c := pub.last(); c != (change{amqp.EntityEntry, amqp.OpCreate, got.ID}) {
				t.Errorf("published %+v", c)
			}
			if err := s.DeleteEntry(ctx, got.ID); err != nil {
				t.Errorf("DeleteEntry() = %v", err)
			}
		})
	}

	if err := s.DeleteEntry(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteEntry(missing) = %v, want %v", err, core.ErrNotFound)
	}
}

func TestLedgerService_Goals(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDefault()
	s := NewLedgerService(store, store, nil)

	g, err := s.CreateGoal(ctx, core.Goal{Period: "2026-02", Flow: core.Expense, TypeID: "2", Amount: core.Reais(6000)})
	if err != nil {
		t.Fatalf("CreateGoal() = %v", err)
	}
	if _, err := s.CreateGoal(ctx, core.Goal{Period: "2026-02", Flow: core.Expense, TypeID: "77", Amount: core.Reais(1)}); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("CreateGoal(unknown type) = %v, want %v", err, ErrInvalidReference)
	}
	if _, err := s.CreateGoal(ctx, core.Goal{Period: "2026-13", Flow: core.Expense, TypeID: "2", Amount: core.Reais(1)}); err == nil {
		t.Error("CreateGoal(bad period) should fail")
	}

	all, err := s.Goals(ctx, "", "", "")
	if err != nil {
		t.Fatalf("Goals() = %v", err)
	}
	if len(all) != 7 {
		t.Errorf("Goals() = %d, want 7", len(all))
	}
	feb, _ := s.Goals(ctx, core.Expense, "2026-02", "2026-02")
	if len(feb) != 1 || feb[0].ID != g.ID {
		t.Errorf("Goals(expense, feb) = %+v", feb)
	}
	if _, err := s.Goals(ctx, "x", "", ""); !errors.Is(err, core.ErrInvalidFlow) {
		t.Errorf("Goals(x) = %v, want %v", err, core.ErrInvalidFlow)
	}
	if err := s.DeleteGoal(ctx, g.ID); err != nil {
		t.Errorf("DeleteGoal() = %v", err)
	}
}
