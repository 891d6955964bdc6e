package http

import (
	"net/http"

	"financeiro/internal/core"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	entries, err := s.ledger.Entries(r.Context(), from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var e core.Entry
	if err := decodeJSON(w, r, &e); err != nil {
		respondError(w, r, err)
		return
	}
	e.Description = sanitizeInput(e.Description)

	created, err := s.ledger.CreateEntry(r.Context(), e)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteEntry(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	flow, err := parseOptionalFlow(query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	from, to, err := parseOpenPeriodRange(query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	goals, err := s.ledger.Goals(r.Context(), flow, from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if err := decodeJSON(w, r, &g); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.ledger.CreateGoal(r.Context(), g)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
