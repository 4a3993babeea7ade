// Package api exposes the dashboard over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/dashboard"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/httpx"
)

// ExceptionLister reads persisted batch assessments. Satisfied by
// storage.Repository.
type ExceptionLister interface {
	ListAssessments(ctx context.Context, tier string, limit int) ([]contracts.Assessment, error)
}

type Options struct {
	AllowedOrigins []string
	// Exceptions may be nil when no database is configured.
	Exceptions ExceptionLister
	Logger     *zap.Logger
}

func NewRouter(svc *dashboard.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	h := handlers{svc: svc, exceptions: opts.Exceptions, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "dashboard-api"})
	})

	router.Get("/stats", h.stats)
	router.Get("/mode-split", h.modeSplit)
	router.Get("/trend-data", h.trend)
	router.Get("/warnings", h.warnings)
	router.Post("/reroute/{orderID}", h.reroute)
	router.Get("/story/{orderID}", h.story)
	router.Get("/mitigate", h.mitigate)
	router.Get("/v1/exceptions", h.listExceptions)

	return router
}

type handlers struct {
	svc        *dashboard.Service
	exceptions ExceptionLister
	logger     *zap.Logger
}

func (h handlers) stats(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Stats(r.Context())
	if err != nil {
		h.internalError(w, r, "stats", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cards)
}

func (h handlers) modeSplit(w http.ResponseWriter, r *http.Request) {
	split, err := h.svc.ModeSplit(r.Context())
	if err != nil {
		h.internalError(w, r, "mode-split", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, split)
}

func (h handlers) trend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.svc.Trend(r.Context())
	if err != nil {
		h.internalError(w, r, "trend-data", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, trend)
}

func (h handlers) warnings(w http.ResponseWriter, r *http.Request) {
	warnings, err := h.svc.Warnings(r.Context())
	if err != nil {
		h.internalError(w, r, "warnings", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, warnings)
}

func (h handlers) reroute(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.svc.Reroute(id))
}

func (h handlers) story(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	story, err := h.svc.Story(r.Context(), id)
	if errors.Is(err, dashboard.ErrOrderNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "story", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, story)
}

func (h handlers) mitigate(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimSpace(r.URL.Query().Get("action"))
	if action == "" {
		httpx.WriteError(w, http.StatusBadRequest, "action is required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.svc.Mitigate(action))
}

func (h handlers) listExceptions(w http.ResponseWriter, r *http.Request) {
	if h.exceptions == nil {
		httpx.WriteError(w, http.StatusServiceUnavailable, "exception store not configured")
		return
	}
	tier := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("tier")))
	if tier != "" && !contracts.Tier(tier).IsValid() {
		httpx.WriteError(w, http.StatusBadRequest, "unknown tier")
		return
	}
	limit := parseLimit(r.URL.Query().Get("limit"), 100)

	items, err := h.exceptions.ListAssessments(r.Context(), tier, limit)
	if err != nil {
		h.internalError(w, r, "exceptions", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// internalError logs the cause and returns a generic body; dataset and
// database details never reach the client.
func (h handlers) internalError(w http.ResponseWriter, r *http.Request, route string, err error) {
	h.logger.Error("dashboard-api request error",
		zap.String("route", route),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "order id must be an integer")
		return 0, false
	}
	return id, true
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if n <= 0 {
		return fallback
	}
	return n
}
