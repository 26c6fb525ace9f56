// Package handler provides HTTP handlers for all API endpoints. Handlers
// are thin wrappers over the condition compiler, intersection counter, and
// the player/grid stores.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vschuh/eurogrid/internal/api/respond"
	"github.com/vschuh/eurogrid/internal/cache"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/config"
	"github.com/vschuh/eurogrid/internal/db"
	"github.com/vschuh/eurogrid/internal/intersect"
	"github.com/vschuh/eurogrid/internal/merge"
	"github.com/vschuh/eurogrid/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool     *db.Pool
	grids    *store.GridStore
	players  *store.PlayerStore
	counter  *intersect.Counter
	compiler *condition.Compiler
	merges   *merge.Resolver
	cache    *cache.Cache
	cfg      *config.Config
	log      *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, counter *intersect.Counter, compiler *condition.Compiler, merges *merge.Resolver, c *cache.Cache, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		pool:     pool,
		grids:    store.NewGridStore(pool.Pool),
		players:  store.NewPlayerStore(pool.Pool),
		counter:  counter,
		compiler: compiler,
		merges:   merges,
		cache:    c,
		cfg:      cfg,
		log:      log,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Eurogrid API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
