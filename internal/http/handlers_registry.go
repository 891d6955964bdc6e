package http

import (
	"net/http"

	"financeiro/internal/core"
)

// registryKind identifies a registry addressed by /api/registry/{kind}.
type registryKind struct {
	flow core.Flow // entry type registries
	role core.Role // counterparty registries
	name string
}

var registryKinds = map[string]registryKind{
	"income-types":    {flow: core.Income, name: "income-types"},
	"expense-types":   {flow: core.Expense, name: "expense-types"},
	"clients":         {role: core.RoleClient, name: "clients"},
	"suppliers":       {role: core.RoleSupplier, name: "suppliers"},
	"projects":        {name: "projects"},
	"payment-methods": {name: "payment-methods"},
}

func (k registryKind) entryTypes() bool { return k.flow != "" }

func (k registryKind) counterparties() bool { return k.role != "" }

// kindFromPath resolves the {kind} path value, answering 404 when unknown.
func kindFromPath(w http.ResponseWriter, r *http.Request) (registryKind, bool) {
	k, ok := registryKinds[r.PathValue("kind")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown registry "+r.PathValue("kind"))
		return registryKind{}, false
	}
	return k, true
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListRegistry(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var (
		out any
		err error
	)
	switch {
	case kind.entryTypes():
		out, err = s.registry.EntryTypes(ctx, kind.flow)
	case kind.counterparties():
		out, err = s.registry.Counterparties(ctx, kind.role)
	case kind.name == "projects":
		out, err = s.registry.Projects(ctx)
	default:
		out, err = s.registry.PaymentMethods(ctx)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRegistry(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var (
		out any
		err error
	)
	switch {
	case kind.entryTypes():
		var t core.EntryType
		if err = decodeJSON(w, r, &t); err == nil {
			t.Flow = kind.flow
			t.Name = sanitizeInput(t.Name)
			out, err = s.registry.CreateEntryType(ctx, t)
		}
	case kind.counterparties():
		var c core.Counterparty
		if err = decodeJSON(w, r, &c); err == nil {
			c.Role = kind.role
			c.Name = sanitizeInput(c.Name)
			out, err = s.registry.CreateCounterparty(ctx, c)
		}
	case kind.name == "projects":
		var p core.Project
		if err = decodeJSON(w, r, &p); err == nil {
			p.Name = sanitizeInput(p.Name)
			out, err = s.registry.CreateProject(ctx, p)
		}
	default:
		var m core.PaymentMethod
		if err = decodeJSON(w, r, &m); err == nil {
			m.Name = sanitizeInput(m.Name)
			out, err = s.registry.CreatePaymentMethod(ctx, m)
		}
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleUpdateRegistry(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := r.PathValue("id")

	var (
		out any
		err error
	)
	switch {
	case kind.entryTypes():
		var req nameRequest
		if err = decodeJSON(w, r, &req); err == nil {
			out, err = s.registry.RenameEntryType(ctx, kind.flow, id, sanitizeInput(req.Name))
		}
	case kind.counterparties():
		var c core.Counterparty
		if err = decodeJSON(w, r, &c); err == nil {
			c.ID, c.Role = id, kind.role
			c.Name = sanitizeInput(c.Name)
			out, err = s.registry.UpdateCounterparty(ctx, c)
		}
	case kind.name == "projects":
		var p core.Project
		if err = decodeJSON(w, r, &p); err == nil {
			p.ID = id
			p.Name = sanitizeInput(p.Name)
			out, err = s.registry.UpdateProject(ctx, p)
		}
	default:
		var m core.PaymentMethod
		if err = decodeJSON(w, r, &m); err == nil {
			m.ID = id
			m.Name = sanitizeInput(m.Name)
			out, err = s.registry.UpdatePaymentMethod(ctx, m)
		}
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteRegistry(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := r.PathValue("id")

	var err error
	switch {
	case kind.entryTypes():
		err = s.registry.DeleteEntryType(ctx, kind.flow, id)
	case kind.counterparties():
		err = s.registry.DeleteCounterparty(ctx, kind.role, id)
	case kind.name == "projects":
		err = s.registry.DeleteProject(ctx, id)
	default:
		err = s.registry.DeletePaymentMethod(ctx, id)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// typeKindFromPath resolves {kind} and requires an entry type registry.
func typeKindFromPath(w http.ResponseWriter, r *http.Request) (registryKind, bool) {
	kind, ok := kindFromPath(w, r)
	if !ok {
		return registryKind{}, false
	}
	if !kind.entryTypes() {
		writeError(w, http.StatusNotFound, kind.name+" have no subcategories")
		return registryKind{}, false
	}
	return kind, true
}

func (s *Server) handleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := typeKindFromPath(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	t, err := s.registry.AddSubcategory(r.Context(), kind.flow, r.PathValue("id"), sanitizeInput(req.Name))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleRenameSubcategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := typeKindFromPath(w, r)
	if !ok {
		return
	}
	var req nameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	t, err := s.registry.RenameSubcategory(r.Context(), kind.flow, r.PathValue("id"), r.PathValue("subID"), sanitizeInput(req.Name))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := typeKindFromPath(w, r)
	if !ok {
		return
	}
	t, err := s.registry.DeleteSubcategory(r.Context(), kind.flow, r.PathValue("id"), r.PathValue("subID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
