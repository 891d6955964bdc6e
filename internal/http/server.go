package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"financeiro/internal/amqp"
	"financeiro/internal/backend"
	"financeiro/internal/cache"
	"financeiro/internal/core"
	applog "financeiro/internal/log"
	"financeiro/internal/middleware/ratelimit"
	"financeiro/internal/middleware/security"
	"financeiro/internal/middleware/trace"
	"financeiro/internal/services"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr               string
	ReportTimeout      time.Duration
	RateLimitPerMinute int
	BalanceMode        core.BalanceMode

	CacheSize int
	CacheTTL  time.Duration
	// RemoteCache is the optional shared tier behind the in-process LRU.
	RemoteCache *cache.RedisCache[json.RawMessage]

	Logger *applog.Logger
}

type Server struct {
	http.Server

	store    backend.Backend
	reports  *services.ReportService
	registry *services.RegistryService
	ledger   *services.LedgerService

	reportTimeout time.Duration
	reportCache   *cache.Tiered[json.RawMessage]
	cacheManager  *cache.Manager
	flight        singleflight.Group

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	log      *applog.StructuredLogger
	now      func() time.Time

	shutdownOnce sync.Once
}

// NewServer wires the services over store and returns a ready-to-run server.
// Every change made through the API is announced on publisher and drops the
// cached reports.
func NewServer(config Config, store backend.Backend, publisher services.Publisher) *Server {
	if config.ReportTimeout <= 0 {
		config.ReportTimeout = 7 * time.Second
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 256
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 5 * time.Minute
	}
	logger := config.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	local := cache.NewLRUCache[json.RawMessage](config.CacheSize, config.CacheTTL)
	manager := cache.NewManager()
	manager.Register(local)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		store:         store,
		reportTimeout: config.ReportTimeout,
		reportCache:   cache.NewTiered[json.RawMessage](local, config.RemoteCache),
		cacheManager:  manager,
		limiter:       ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: config.RateLimitPerMinute}),
		detector:      security.NewDetector(),
		log:           applog.NewStructuredLogger(logger),
		now:           time.Now,
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	pub := services.MultiPublisher(publisher, services.PublisherFunc(s.invalidateReports))
	s.reports = services.NewReportService(store, store, store, config.BalanceMode)
	s.registry = services.NewRegistryService(store, pub)
	s.ledger = services.NewLedgerService(store, store, pub)

	s.Addr = config.Addr
	s.Handler = s.routes()
	s.ReadHeaderTimeout = 10 * time.Second
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	api := http.NewServeMux()

	api.HandleFunc("GET /api/reports/dre", s.handleIncomeStatement)
	api.HandleFunc("GET /api/reports/dre/tree", s.handleDrillDown(""))
	api.HandleFunc("GET /api/reports/revenue", s.handleDrillDown(services.LineRevenue))
	api.HandleFunc("GET /api/reports/expenses", s.handleDrillDown(services.LineExpenses))
	api.HandleFunc("GET /api/reports/dfc", s.handleCashFlow)
	api.HandleFunc("GET /api/reports/budget", s.handleBudget)
	api.HandleFunc("GET /api/reports/delinquency", s.handleDelinquency)
	api.HandleFunc("GET /api/reports/payables", s.handlePayables)
	api.HandleFunc("GET /api/reports/pricing", s.handlePricing)
	api.HandleFunc("GET /api/reports/daily", s.handleDailyFlow)
	api.HandleFunc("GET /api/reports/goals", s.handleGoalAttainment)
	api.HandleFunc("GET /api/reports/dashboard", s.handleDashboard)
	api.HandleFunc("GET /api/export/xlsx", s.handleExportXLSX)

	api.HandleFunc("GET /api/registry/{kind}", s.handleListRegistry)
	api.HandleFunc("POST /api/registry/{kind}", s.handleCreateRegistry)
	api.HandleFunc("PUT /api/registry/{kind}/{id}", s.handleUpdateRegistry)
	api.HandleFunc("DELETE /api/registry/{kind}/{id}", s.handleDeleteRegistry)
	api.HandleFunc("POST /api/registry/{kind}/{id}/subcategories", s.handleAddSubcategory)
	api.HandleFunc("PUT /api/registry/{kind}/{id}/subcategories/{subID}", s.handleRenameSubcategory)
	api.HandleFunc("DELETE /api/registry/{kind}/{id}/subcategories/{subID}", s.handleDeleteSubcategory)

	api.HandleFunc("GET /api/entries", s.handleListEntries)
	api.HandleFunc("POST /api/entries", s.handleCreateEntry)
	api.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)
	api.HandleFunc("GET /api/goals", s.handleListGoals)
	api.HandleFunc("POST /api/goals", s.handleCreateGoal)
	api.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		slog.WarnContext(r.Context(), "Rate limit exceeded",
			"client_ip", s.detector.ExtractClientIP(r),
			"method", r.Method,
			"path", r.URL.Path)
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})
	mux.Handle("/api/", limited(security.NoStoreMiddleware(api)))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	return s.detector.Middleware(s.tracer.Middleware(headers.Middleware(mux)))
}

// Reports exposes the report service the server computes from.
func (s *Server) Reports() *services.ReportService {
	return s.reports
}

// InvalidateReports drops every cached report. It matches
// services.PublisherFunc so it can follow change messages from other
// processes.
func (s *Server) InvalidateReports(ctx context.Context, msg *amqp.ChangeMessage) error {
	return s.invalidateReports(ctx, msg.Entity, msg.Op, msg.ID)
}

func (s *Server) invalidateReports(ctx context.Context, entity string, op amqp.Op, id string) error {
	s.reportCache.Invalidate(ctx)
	slog.DebugContext(ctx, "Report cache invalidated", "entity", entity, "op", op, "id", id)
	return nil
}

// Shutdown gracefully shuts down the server and its background routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		st := s.reportCache.Stats()
		slog.InfoContext(ctx, "Report cache closed", "hits", st.Hits, "misses", st.Misses, "invalidations", st.Generation)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
