// Package memory is an in-process store seeded from the demonstration dataset.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"financeiro/internal/core"
	"financeiro/internal/ports"
	"financeiro/internal/seed"
)

// Store keeps every registry in a copy-on-write collection. Statements are
// read-only after construction.
type Store struct {
	mu sync.RWMutex

	data seed.Dataset

	incomeTypes    core.Collection[core.EntryType]
	expenseTypes   core.Collection[core.EntryType]
	clients        core.Collection[core.Counterparty]
	suppliers      core.Collection[core.Counterparty]
	projects       core.Collection[core.Project]
	paymentMethods core.Collection[core.PaymentMethod]

	entries []core.Entry
	goals   []core.Goal
}

var (
	_ ports.ReportSource  = (*Store)(nil)
	_ ports.RegistryStore = (*Store)(nil)
	_ ports.LedgerStore   = (*Store)(nil)
)

// New builds a store from d.
func New(d seed.Dataset) (*Store, error) {
	s := &Store{data: d}
	var err error
	if s.incomeTypes, err = core.NewCollection(d.IncomeTypes...); err != nil {
		return nil, fmt.Errorf("income types: %w", err)
	}
	if s.expenseTypes, err = core.NewCollection(d.ExpenseTypes...); err != nil {
		return nil, fmt.Errorf("expense types: %w", err)
	}
	if s.clients, err = core.NewCollection(d.Clients...); err != nil {
		return nil, fmt.Errorf("clients: %w", err)
	}
	if s.suppliers, err = core.NewCollection(d.Suppliers...); err != nil {
		return nil, fmt.Errorf("suppliers: %w", err)
	}
	if s.projects, err = core.NewCollection(d.Projects...); err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}
	if s.paymentMethods, err = core.NewCollection(d.PaymentMethods...); err != nil {
		return nil, fmt.Errorf("payment methods: %w", err)
	}
	s.entries = append([]core.Entry(nil), d.Entries...)
	s.goals = append([]core.Goal(nil), d.Goals...)
	return s, nil
}

// NewDefault builds a store from seed.Default.
func NewDefault() *Store {
	s, err := New(seed.Default())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) IncomeStatement(_ context.Context) (core.Statement, error) {
	return s.data.DRE, nil
}

func (s *Store) CashFlow(_ context.Context) (core.CashFlow, error) {
	return s.data.CashFlow, nil
}

func (s *Store) BudgetLines(_ context.Context) ([]core.BudgetLine, error) {
	return append([]core.BudgetLine(nil), s.data.Budget...), nil
}

func (s *Store) BudgetMonths(_ context.Context) ([]core.BudgetMonth, error) {
	return append([]core.BudgetMonth(nil), s.data.BudgetMonths...), nil
}

func (s *Store) Receivables(_ context.Context) ([]core.Receivable, error) {
	return append([]core.Receivable(nil), s.data.Receivables...), nil
}

func (s *Store) Payables(_ context.Context) ([]core.Payable, error) {
	return append([]core.Payable(nil), s.data.Payables...), nil
}

func (s *Store) Products(_ context.Context) ([]core.Product, error) {
	return append([]core.Product(nil), s.data.Products...), nil
}

func (s *Store) entryTypes(flow core.Flow) (*core.Collection[core.EntryType], error) {
	switch flow {
	case core.Income:
		return &s.incomeTypes, nil
	case core.Expense:
		return &s.expenseTypes, nil
	}
	return nil, core.ErrInvalidFlow
}

func (s *Store) counterparties(role core.Role) (*core.Collection[core.Counterparty], error) {
	switch role {
	case core.RoleClient:
		return &s.clients, nil
	case core.RoleSupplier:
		return &s.suppliers, nil
	}
	return nil, core.ErrInvalidRole
}

func (s *Store) ListEntryTypes(_ context.Context, flow core.Flow) ([]core.EntryType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.entryTypes(flow)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (s *Store) CreateEntryType(_ context.Context, t core.EntryType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.entryTypes(t.Flow)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.EntryType]) (core.Collection[core.EntryType], error) { return c.Add(t) })
}

func (s *Store) UpdateEntryType(_ context.Context, t core.EntryType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.entryTypes(t.Flow)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.EntryType]) (core.Collection[core.EntryType], error) { return c.Update(t) })
}

func (s *Store) DeleteEntryType(_ context.Context, flow core.Flow, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.entryTypes(flow)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.EntryType]) (core.Collection[core.EntryType], error) { return c.Remove(id) })
}

func (s *Store) ListCounterparties(_ context.Context, role core.Role) ([]core.Counterparty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.counterparties(role)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

func (s *Store) CreateCounterparty(_ context.Context, cp core.Counterparty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.counterparties(cp.Role)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.Counterparty]) (core.Collection[core.Counterparty], error) { return c.Add(cp) })
}

func (s *Store) UpdateCounterparty(_ context.Context, cp core.Counterparty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.counterparties(cp.Role)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.Counterparty]) (core.Collection[core.Counterparty], error) { return c.Update(cp) })
}

func (s *Store) DeleteCounterparty(_ context.Context, role core.Role, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.counterparties(role)
	if err != nil {
		return err
	}
	return apply(c, func(c core.Collection[core.Counterparty]) (core.Collection[core.Counterparty], error) { return c.Remove(id) })
}

func (s *Store) ListProjects(_ context.Context) ([]core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.All(), nil
}

func (s *Store) CreateProject(_ context.Context, p core.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.projects, func(c core.Collection[core.Project]) (core.Collection[core.Project], error) { return c.Add(p) })
}

func (s *Store) UpdateProject(_ context.Context, p core.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.projects, func(c core.Collection[core.Project]) (core.Collection[core.Project], error) { return c.Update(p) })
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.projects, func(c core.Collection[core.Project]) (core.Collection[core.Project], error) { return c.Remove(id) })
}

func (s *Store) ListPaymentMethods(_ context.Context) ([]core.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentMethods.All(), nil
}

func (s *Store) CreatePaymentMethod(_ context.Context, m core.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.paymentMethods, func(c core.Collection[core.PaymentMethod]) (core.Collection[core.PaymentMethod], error) { return c.Add(m) })
}

func (s *Store) UpdatePaymentMethod(_ context.Context, m core.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.paymentMethods, func(c core.Collection[core.PaymentMethod]) (core.Collection[core.PaymentMethod], error) { return c.Update(m) })
}

func (s *Store) DeletePaymentMethod(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.paymentMethods, func(c core.Collection[core.PaymentMethod]) (core.Collection[core.PaymentMethod], error) { return c.Remove(id) })
}

// apply swaps *c for the result of op when it succeeds.
func apply[T core.Record](c *core.Collection[T], op func(core.Collection[T]) (core.Collection[T], error)) error {
	next, err := op(*c)
	if err != nil {
		return err
	}
	*c = next
	return nil
}

// ListEntries returns entries within [from, to], oldest first.
func (s *Store) ListEntries(_ context.Context, from, to core.Date) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Entry
	for _, e := range s.entries {
		if !from.IsZero() && e.Date.Before(from.Time) {
			continue
		}
		if !to.IsZero() && e.Date.After(to.Time) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

func (s *Store) CreateEntry(_ context.Context, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.entries {
		if existing.ID == e.ID {
			return fmt.Errorf("%w: %s", core.ErrDuplicateID, e.ID)
		}
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// ListGoals returns goals of flow within [from, to]. An empty flow matches both.
func (s *Store) ListGoals(_ context.Context, flow core.Flow, from, to core.Period) ([]core.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Goal
	for _, g := range s.goals {
		if flow != "" && g.Flow != flow {
			continue
		}
		if from != "" && g.Period.Before(from) {
			continue
		}
		if to != "" && to.Before(g.Period) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) CreateGoal(_ context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.goals {
		if existing.ID == g.ID {
			return fmt.Errorf("%w: %s", core.ErrDuplicateID, g.ID)
		}
	}
	s.goals = append(s.goals, g)
	return nil
}

func (s *Store) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i:i], s.goals[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}
