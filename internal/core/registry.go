package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleClient   Role = "client"
	RoleSupplier Role = "supplier"
)

const (
	PersonNatural PersonKind = "pf"
	PersonLegal   PersonKind = "pj"
)

type (
	// Role tells whether a counterparty is a client or a supplier.
	Role string

	// PersonKind is pf (natural person) or pj (legal entity).
	PersonKind string

	Subcategory struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// EntryType classifies income or expense entries.
	EntryType struct {
		ID            string        `json:"id"`
		Flow          Flow          `json:"flow"`
		Name          string        `json:"name"`
		Builtin       bool          `json:"builtin"`
		Subcategories []Subcategory `json:"subcategories"`
	}

	Counterparty struct {
		ID          string     `json:"id"`
		Role        Role       `json:"role"`
		Kind        PersonKind `json:"kind"`
		Name        string     `json:"name"`
		Document    string     `json:"document,omitempty"`
		Address     string     `json:"address,omitempty"`
		City        string     `json:"city,omitempty"`
		State       string     `json:"state,omitempty"`
		Phone       string     `json:"phone,omitempty"`
		Email       string     `json:"email,omitempty"`
		ContactName string     `json:"contactName,omitempty"`
	}

	Project struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Consolidated bool   `json:"consolidated"`
	}

	PaymentMethod struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Builtin bool   `json:"builtin"`
	}

	// Record is a registry row.
	Record interface {
		Key() string
		IsBuiltin() bool
		Validate() error
	}

	// Collection is an immutable ordered set of records. Every mutation returns
	// a new collection and leaves the receiver untouched.
	Collection[T Record] struct {
		items []T
	}
)

var (
	ErrInvalidRole = errors.New("invalid counterparty role")
	ErrInvalidKind = errors.New("invalid person kind")
)

func (r Role) IsValid() bool       { return r == RoleClient || r == RoleSupplier }
func (k PersonKind) IsValid() bool { return k == PersonNatural || k == PersonLegal }

func (t EntryType) Key() string      { return t.ID }
func (t EntryType) IsBuiltin() bool  { return t.Builtin }
func (c Counterparty) Key() string   { return c.ID }
func (Counterparty) IsBuiltin() bool { return false }
func (p Project) Key() string        { return p.ID }
func (Project) IsBuiltin() bool      { return false }
func (m PaymentMethod) Key() string  { return m.ID }
func (m PaymentMethod) IsBuiltin() bool {
	return m.Builtin
}

func (t EntryType) Validate() error {
	if !t.Flow.IsValid() {
		return ErrInvalidFlow
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	seen := map[string]bool{}
	for _, s := range t.Subcategories {
		if strings.TrimSpace(s.Name) == "" {
			return ErrEmptyName
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// Subcategory returns the subcategory with id.
func (t EntryType) Subcategory(id string) (Subcategory, bool) {
	for _, s := range t.Subcategories {
		if s.ID == id {
			return s, true
		}
	}
	return Subcategory{}, false
}

// WithSubcategory returns a copy of t with s appended or renamed.
func (t EntryType) WithSubcategory(s Subcategory) EntryType {
	subs := make([]Subcategory, 0, len(t.Subcategories)+1)
	replaced := false
	for _, existing := range t.Subcategories {
		if existing.ID == s.ID {
			existing = s
			replaced = true
		}
		subs = append(subs, existing)
	}
	if !replaced {
		subs = append(subs, s)
	}
	t.Subcategories = subs
	return t
}

// WithoutSubcategory returns a copy of t without the subcategory id.
func (t EntryType) WithoutSubcategory(id string) (EntryType, error) {
	subs := make([]Subcategory, 0, len(t.Subcategories))
	for _, s := range t.Subcategories {
		if s.ID != id {
			subs = append(subs, s)
		}
	}
	if len(subs) == len(t.Subcategories) {
		return t, ErrNotFound
	}
	t.Subcategories = subs
	return t, nil
}

func (c Counterparty) Validate() error {
	if !c.Role.IsValid() {
		return ErrInvalidRole
	}
	if !c.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (m PaymentMethod) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// NewCollection builds a collection, rejecting duplicate keys.
func NewCollection[T Record](items ...T) (Collection[T], error) {
	c := Collection[T]{}
	for _, it := range items {
		next, err := c.Add(it)
		if err != nil {
			return Collection[T]{}, err
		}
		c = next
	}
	return c, nil
}

func (c Collection[T]) Len() int {
	return len(c.items)
}

// All returns a copy of the records in insertion order.
func (c Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c Collection[T]) Find(id string) (T, bool) {
	for _, it := range c.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records matching keep.
func (c Collection[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c Collection[T]) Add(item T) (Collection[T], error) {
	if err := item.Validate(); err != nil {
		return c, err
	}
	if strings.TrimSpace(item.Key()) == "" {
		return c, ErrEmptyID
	}
	if _, ok := c.Find(item.Key()); ok {
		return c, fmt.Errorf("%w: %s", ErrDuplicateID, item.Key())
	}
	items := make([]T, len(c.items), len(c.items)+1)
	copy(items, c.items)
	return Collection[T]{items: append(items, item)}, nil
}

// Update replaces the record with the same key.
func (c Collection[T]) Update(item T) (Collection[T], error) {
	if err := item.Validate(); err != nil {
		return c, err
	}
	items := c.All()
	for i, it := range items {
		if it.Key() == item.Key() {
			items[i] = item
			return Collection[T]{items: items}, nil
		}
	}
	return c, ErrNotFound
}

// Remove deletes the record with id. Built-in records are refused.
func (c Collection[T]) Remove(id string) (Collection[T], error) {
	for i, it := range c.items {
		if it.Key() != id {
			continue
		}
		if it.IsBuiltin() {
			return c, fmt.Errorf("%w: %s", ErrBuiltinEntry, id)
		}
		items := make([]T, 0, len(c.items)-1)
		items = append(items, c.items[:i]...)
		items = append(items, c.items[i+1:]...)
		return Collection[T]{items: items}, nil
	}
	return c, ErrNotFound
}
