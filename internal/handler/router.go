package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/efreitasn/resexchange/internal/service"
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware.
func NewRouter(
	agentSvc *service.AgentService,
	inventorySvc *service.InventoryService,
	exchangeSvc *service.ExchangeService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	agentH := NewAgentHandler(agentSvc, inventorySvc)
	inventoryH := NewInventoryHandler(inventorySvc)
	portfolioH := NewPortfolioHandler(exchangeSvc)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/agents", agentH.Register)
	r.Get("/agents/{agent_id}", agentH.Get)

	r.Route("/agents/{agent_id}/buffers", func(r chi.Router) {
		r.Post("/", inventoryH.CreateBuffer)
		r.Get("/{buffer}", inventoryH.GetBuffer)
		r.Put("/{buffer}/capacity", inventoryH.SetCapacity)
		r.Post("/{buffer}/resources", inventoryH.Deposit)
		r.Post("/{buffer}/pop", inventoryH.Withdraw)
		r.Delete("/{buffer}/resources/{key}", inventoryH.Erase)
	})

	r.Post("/portfolios", portfolioH.Submit)
	r.Get("/portfolios", portfolioH.List)
	r.Get("/portfolios/{portfolio_id}", portfolioH.Get)
	r.Post("/portfolios/{portfolio_id}/requests", portfolioH.AddRequests)

	r.Post("/cycles/resolve", portfolioH.ResolveCycle)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON rejects POST and PUT requests that carry a body without an
// application/json Content-Type. Bodyless POSTs (pop, resolve) pass through.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.ContentLength != 0 {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
