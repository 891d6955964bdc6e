package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/ports"
)

// ErrInvalidReference is returned when an entry or goal points at a registry
// row that does not exist or does not fit.
var ErrInvalidReference = errors.New("invalid reference")

// LedgerService records manual entries and goals.
type LedgerService struct {
	ledger   ports.LedgerStore
	registry ports.RegistryStore
	notifier
}

func NewLedgerService(ledger ports.LedgerStore, registry ports.RegistryStore, publisher Publisher) *LedgerService {
	return &LedgerService{ledger: ledger, registry: registry, notifier: notifier{publisher}}
}

// Entries lists entries dated within [from, to]; zero bounds are open.
func (s *LedgerService) Entries(ctx context.Context, from, to core.Date) ([]core.Entry, error) {
	entries, err := s.ledger.ListEntries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// CreateEntry validates e and its registry references, stores it and
// publishes the change.
func (s *LedgerService) CreateEntry(ctx context.Context, e core.Entry) (core.Entry, error) {
	e.ID = newID()
	e.Description = strings.TrimSpace(e.Description)
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	if err := s.checkReferences(ctx, e); err != nil {
		return core.Entry{}, err
	}
	if err := s.ledger.CreateEntry(ctx, e); err != nil {
		return core.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	s.publish(ctx, amqp.EntityEntry, amqp.OpCreate, e.ID)
	return e, nil
}

func (s *LedgerService) DeleteEntry(ctx context.Context, id string) error {
	if err := s.ledger.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.publish(ctx, amqp.EntityEntry, amqp.OpDelete, id)
	return nil
}

func (s *LedgerService) checkReferences(ctx context.Context, e core.Entry) error {
	t, err := s.entryType(ctx, e.Flow, e.TypeID)
	if err != nil {
		return err
	}
	if e.SubcategoryID != "" {
		if _, ok := t.Subcategory(e.SubcategoryID); !ok {
			return fmt.Errorf("%w: subcategory %s is not part of type %s", ErrInvalidReference, e.SubcategoryID, e.TypeID)
		}
	}

	if e.CounterpartyID != "" {
		role := core.RoleClient
		if e.Flow == core.Expense {
			role = core.RoleSupplier
		}
		parties, err := s.registry.ListCounterparties(ctx, role)
		if err != nil {
			return fmt.Errorf("list counterparties: %w", err)
		}
		if !containsID(parties, e.CounterpartyID) {
			return fmt.Errorf("%w: no %s with id %s", ErrInvalidReference, role, e.CounterpartyID)
		}
	}

	if e.ProjectID != "" {
		projects, err := s.registry.ListProjects(ctx)
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		if !containsID(projects, e.ProjectID) {
			return fmt.Errorf("%w: project %s", ErrInvalidReference, e.ProjectID)
		}
	}

	if e.PaymentMethodID != "" {
		methods, err := s.registry.ListPaymentMethods(ctx)
		if err != nil {
			return fmt.Errorf("list payment methods: %w", err)
		}
		if !containsID(methods, e.PaymentMethodID) {
			return fmt.Errorf("%w: payment method %s", ErrInvalidReference, e.PaymentMethodID)
		}
	}
	return nil
}

func (s *LedgerService) entryType(ctx context.Context, flow core.Flow, id string) (core.EntryType, error) {
	types, err := s.registry.ListEntryTypes(ctx, flow)
	if err != nil {
		return core.EntryType{}, fmt.Errorf("list entry types: %w", err)
	}
	for _, t := range types {
		if t.ID == id {
			return t, nil
		}
	}
	return core.EntryType{}, fmt.Errorf("%w: no %s type with id %s", ErrInvalidReference, flow, id)
}

func containsID[T core.Record](items []T, id string) bool {
	for _, it := range items {
		if it.Key() == id {
			return true
		}
	}
	return false
}

// Goals lists goals of flow within [from, to]. An empty flow matches both.
func (s *LedgerService) Goals(ctx context.Context, flow core.Flow, from, to core.Period) ([]core.Goal, error) {
	if flow != "" && !flow.IsValid() {
		return nil, core.ErrInvalidFlow
	}
	goals, err := s.ledger.ListGoals(ctx, flow, from, to)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *LedgerService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.ID = newID()
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if _, err := s.entryType(ctx, g.Flow, g.TypeID); err != nil {
		return core.Goal{}, err
	}
	if err := s.ledger.CreateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	s.publish(ctx, amqp.EntityGoal, amqp.OpCreate, g.ID)
	return g, nil
}

func (s *LedgerService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.ledger.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	s.publish(ctx, amqp.EntityGoal, amqp.OpDelete, id)
	return nil
}
