package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"financeiro/internal/export"
	"financeiro/internal/services"
)

const headerCache = "X-Cache"

// reportFunc computes one report under a bounded context.
type reportFunc func(ctx context.Context) (any, error)

// serveReport answers from the report cache keyed by the request URL.
func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, name string, compute reportFunc) {
	s.serveReportKey(w, r, name, r.URL.Path+"?"+r.URL.Query().Encode(), compute)
}

// serveReportKey answers from the report cache, computing the report once
// for concurrent identical requests on a miss. Handlers that fill in
// defaults from the clock pass a key built from the resolved parameters.
func (s *Server) serveReportKey(w http.ResponseWriter, r *http.Request, name, key string, compute reportFunc) {
	start := time.Now()

	if data, ok := s.reportCache.Get(r.Context(), key); ok {
		w.Header().Set(headerCache, "HIT")
		writeRawJSON(w, http.StatusOK, data)
		s.log.LogReport(r.Context(), name, time.Since(start).Milliseconds(), true)
		return
	}

	v, err, shared := s.flight.Do(key, func() (any, error) {
		generation := s.reportCache.Generation()
		// shared by every waiting request, so one caller leaving must not cancel it
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.reportTimeout)
		defer cancel()
		report, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		if !s.reportCache.SetIfCurrent(ctx, key, data, generation) {
			slog.DebugContext(ctx, "Report changed while computing, not cached", "report", name)
		}
		return json.RawMessage(data), nil
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set(headerCache, "MISS")
	writeRawJSON(w, http.StatusOK, v.(json.RawMessage))
	s.log.LogReport(r.Context(), name, time.Since(start).Milliseconds(), shared)
}

func (s *Server) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "dre", func(ctx context.Context) (any, error) {
		return s.reports.IncomeStatement(ctx)
	})
}

// handleDrillDown serves the flattened rows under rootID ("" for the whole
// statement) with the ids of the expanded query parameter open. The whole
// statement opens on the default expansion when the parameter is absent.
func (s *Server) handleDrillDown(rootID string) http.HandlerFunc {
	name := "dre-tree"
	if rootID != "" {
		name = rootID
	}
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		expanded := parseExpanded(query)
		if rootID == "" && !query.Has("expanded") {
			expanded = services.DefaultExpansion()
		}
		s.serveReport(w, r, name, func(ctx context.Context) (any, error) {
			rows, err := s.reports.DrillDown(ctx, rootID, expanded)
			if err != nil {
				return nil, err
			}
			return map[string]any{"root": rootID, "expanded": expanded.IDs(), "rows": rows}, nil
		})
	}
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	mode, err := parseBalanceMode(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.serveReport(w, r, "dfc", func(ctx context.Context) (any, error) {
		return s.reports.CashFlow(ctx, mode)
	})
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "budget", func(ctx context.Context) (any, error) {
		return s.reports.Budget(ctx)
	})
}

func (s *Server) handleDelinquency(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "delinquency", func(ctx context.Context) (any, error) {
		return s.reports.Delinquency(ctx)
	})
}

func (s *Server) handlePayables(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "payables", func(ctx context.Context) (any, error) {
		return s.reports.Payables(ctx)
	})
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "pricing", func(ctx context.Context) (any, error) {
		return s.reports.Pricing(ctx)
	})
}

func (s *Server) handleDailyFlow(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.serveReport(w, r, "daily", func(ctx context.Context) (any, error) {
		return s.reports.DailyFlow(ctx, from, to)
	})
}

func (s *Server) handleGoalAttainment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	flow, err := parseFlow(query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	from, to, err := parsePeriodRange(query, s.now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	resolved := url.Values{"flow": {string(flow)}, "from": {string(from)}, "to": {string(to)}}
	s.serveReportKey(w, r, "goals", r.URL.Path+"?"+resolved.Encode(), func(ctx context.Context) (any, error) {
		return s.reports.GoalAttainment(ctx, flow, from, to)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	mode, err := parseBalanceMode(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.serveReport(w, r, "dashboard", func(ctx context.Context) (any, error) {
		return s.reports.Dashboard(ctx, mode)
	})
}

// handleExportXLSX streams a workbook with one sheet per report.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	mode, err := parseBalanceMode(r.URL.Query())
	if err != nil {
		respondError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.reportTimeout)
	defer cancel()

	snap, err := s.reports.Snapshot(ctx, mode)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, export.Tables(snap)); err != nil {
		respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("relatorios-%s.xlsx", snap.GeneratedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
