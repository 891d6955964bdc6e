package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"financeiro/internal/amqp"
	"financeiro/internal/core"
	"financeiro/internal/ports"
)

// RegistryService manages the master-data registries: entry types with their
// subcategories, clients, suppliers, projects and payment methods.
type RegistryService struct {
	store ports.RegistryStore
	notifier
}

func NewRegistryService(store ports.RegistryStore, publisher Publisher) *RegistryService {
	return &RegistryService{store: store, notifier: notifier{publisher}}
}

func newID() string {
	return uuid.NewString()
}

// EntryTypes lists the entry types of flow.
func (s *RegistryService) EntryTypes(ctx context.Context, flow core.Flow) ([]core.EntryType, error) {
	if !flow.IsValid() {
		return nil, core.ErrInvalidFlow
	}
	types, err := s.store.ListEntryTypes(ctx, flow)
	if err != nil {
		return nil, fmt.Errorf("list entry types: %w", err)
	}
	return types, nil
}

// EntryType returns one entry type of flow.
func (s *RegistryService) EntryType(ctx context.Context, flow core.Flow, id string) (core.EntryType, error) {
	types, err := s.EntryTypes(ctx, flow)
	if err != nil {
		return core.EntryType{}, err
	}
	for _, t := range types {
		if t.ID == id {
			return t, nil
		}
	}
	return core.EntryType{}, fmt.Errorf("entry type %s: %w", id, core.ErrNotFound)
}

// CreateEntryType stores a new user-defined entry type. Ids of the type and
// of its subcategories are assigned here.
func (s *RegistryService) CreateEntryType(ctx context.Context, t core.EntryType) (core.EntryType, error) {
	t.ID = newID()
	t.Builtin = false
	t.Name = strings.TrimSpace(t.Name)
	for i := range t.Subcategories {
		t.Subcategories[i].ID = newID()
		t.Subcategories[i].Name = strings.TrimSpace(t.Subcategories[i].Name)
	}
	if err := t.Validate(); err != nil {
		return core.EntryType{}, err
	}
	if err := s.store.CreateEntryType(ctx, t); err != nil {
		return core.EntryType{}, fmt.Errorf("create entry type: %w", err)
	}
	s.publish(ctx, amqp.EntityEntryType, amqp.OpCreate, t.ID)
	return t, nil
}

// RenameEntryType changes the name of an entry type, built-in ones included.
func (s *RegistryService) RenameEntryType(ctx context.Context, flow core.Flow, id, name string) (core.EntryType, error) {
	t, err := s.EntryType(ctx, flow, id)
	if err != nil {
		return core.EntryType{}, err
	}
	t.Name = strings.TrimSpace(name)
	return s.updateEntryType(ctx, t)
}

func (s *RegistryService) updateEntryType(ctx context.Context, t core.EntryType) (core.EntryType, error) {
	if err := t.Validate(); err != nil {
		return core.EntryType{}, err
	}
	if err := s.store.UpdateEntryType(ctx, t); err != nil {
		return core.EntryType{}, fmt.Errorf("update entry type: %w", err)
	}
	s.publish(ctx, amqp.EntityEntryType, amqp.OpUpdate, t.ID)
	return t, nil
}

func (s *RegistryService) DeleteEntryType(ctx context.Context, flow core.Flow, id string) error {
	if !flow.IsValid() {
		return core.ErrInvalidFlow
	}
	if err := s.store.DeleteEntryType(ctx, flow, id); err != nil {
		return fmt.Errorf("delete entry type: %w", err)
	}
	s.publish(ctx, amqp.EntityEntryType, amqp.OpDelete, id)
	return nil
}

// AddSubcategory appends a named subcategory to an entry type.
func (s *RegistryService) AddSubcategory(ctx context.Context, flow core.Flow, typeID, name string) (core.EntryType, error) {
	t, err := s.EntryType(ctx, flow, typeID)
	if err != nil {
		return core.EntryType{}, err
	}
	return s.updateEntryType(ctx, t.WithSubcategory(core.Subcategory{ID: newID(), Name: strings.TrimSpace(name)}))
}

func (s *RegistryService) RenameSubcategory(ctx context.Context, flow core.Flow, typeID, subID, name string) (core.EntryType, error) {
	t, err := s.EntryType(ctx, flow, typeID)
	if err != nil {
		return core.EntryType{}, err
	}
	if _, ok := t.Subcategory(subID); !ok {
		return core.EntryType{}, fmt.Errorf("subcategory %s: %w", subID, core.ErrNotFound)
	}
	return s.updateEntryType(ctx, t.WithSubcategory(core.Subcategory{ID: subID, Name: strings.TrimSpace(name)}))
}

func (s *RegistryService) DeleteSubcategory(ctx context.Context, flow core.Flow, typeID, subID string) (core.EntryType, error) {
	t, err := s.EntryType(ctx, flow, typeID)
	if err != nil {
		return core.EntryType{}, err
	}
	next, err := t.WithoutSubcategory(subID)
	if err != nil {
		return core.EntryType{}, fmt.Errorf("subcategory %s: %w", subID, err)
	}
	return s.updateEntryType(ctx, next)
}

func (s *RegistryService) Counterparties(ctx context.Context, role core.Role) ([]core.Counterparty, error) {
	if !role.IsValid() {
		return nil, core.ErrInvalidRole
	}
	out, err := s.store.ListCounterparties(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	return out, nil
}

func (s *RegistryService) CreateCounterparty(ctx context.Context, c core.Counterparty) (core.Counterparty, error) {
	c.ID = newID()
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return core.Counterparty{}, err
	}
	if err := s.store.CreateCounterparty(ctx, c); err != nil {
		return core.Counterparty{}, fmt.Errorf("create counterparty: %w", err)
	}
	s.publish(ctx, amqp.EntityCounterparty, amqp.OpCreate, c.ID)
	return c, nil
}

func (s *RegistryService) UpdateCounterparty(ctx context.Context, c core.Counterparty) (core.Counterparty, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return core.Counterparty{}, err
	}
	if err := s.store.UpdateCounterparty(ctx, c); err != nil {
		return core.Counterparty{}, fmt.Errorf("update counterparty: %w", err)
	}
	s.publish(ctx, amqp.EntityCounterparty, amqp.OpUpdate, c.ID)
	return c, nil
}

func (s *RegistryService) DeleteCounterparty(ctx context.Context, role core.Role, id string) error {
	if !role.IsValid() {
		return core.ErrInvalidRole
	}
	if err := s.store.DeleteCounterparty(ctx, role, id); err != nil {
		return fmt.Errorf("delete counterparty: %w", err)
	}
	s.publish(ctx, amqp.EntityCounterparty, amqp.OpDelete, id)
	return nil
}

func (s *RegistryService) Projects(ctx context.Context) ([]core.Project, error) {
	out, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

func (s *RegistryService) CreateProject(ctx context.Context, p core.Project) (core.Project, error) {
	p.ID = newID()
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return core.Project{}, err
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return core.Project{}, fmt.Errorf("create project: %w", err)
	}
	s.publish(ctx, amqp.EntityProject, amqp.OpCreate, p.ID)
	return p, nil
}

func (s *RegistryService) UpdateProject(ctx context.Context, p core.Project) (core.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return core.Project{}, err
	}
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return core.Project{}, fmt.Errorf("update project: %w", err)
	}
	s.publish(ctx, amqp.EntityProject, amqp.OpUpdate, p.ID)
	return p, nil
}

func (s *RegistryService) DeleteProject(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.publish(ctx, amqp.EntityProject, amqp.OpDelete, id)
	return nil
}

func (s *RegistryService) PaymentMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	out, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return out, nil
}

func (s *RegistryService) CreatePaymentMethod(ctx context.Context, m core.PaymentMethod) (core.PaymentMethod, error) {
	m.ID = newID()
	m.Builtin = false
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return core.PaymentMethod{}, err
	}
	if err := s.store.CreatePaymentMethod(ctx, m); err != nil {
		return core.PaymentMethod{}, fmt.Errorf("create payment method: %w", err)
	}
	s.publish(ctx, amqp.EntityPaymentMethod, amqp.OpCreate, m.ID)
	return m, nil
}

// UpdatePaymentMethod renames a payment method; the built-in flag is kept
// from the stored row.
func (s *RegistryService) UpdatePaymentMethod(ctx context.Context, m core.PaymentMethod) (core.PaymentMethod, error) {
	methods, err := s.PaymentMethods(ctx)
	if err != nil {
		return core.PaymentMethod{}, err
	}
	found := false
	for _, existing := range methods {
		if existing.ID == m.ID {
			m.Builtin = existing.Builtin
			found = true
			break
		}
	}
	if !found {
		return core.PaymentMethod{}, fmt.Errorf("payment method %s: %w", m.ID, core.ErrNotFound)
	}
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return core.PaymentMethod{}, err
	}
	if err := s.store.UpdatePaymentMethod(ctx, m); err != nil {
		return core.PaymentMethod{}, fmt.Errorf("update payment method: %w", err)
	}
	s.publish(ctx, amqp.EntityPaymentMethod, amqp.OpUpdate, m.ID)
	return m, nil
}

func (s *RegistryService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := s.store.DeletePaymentMethod(ctx, id); err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	s.publish(ctx, amqp.EntityPaymentMethod, amqp.OpDelete, id)
	return nil
}
