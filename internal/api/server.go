package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/vschuh/eurogrid/internal/api/handler"
	"github.com/vschuh/eurogrid/internal/cache"
	"github.com/vschuh/eurogrid/internal/condition"
	"github.com/vschuh/eurogrid/internal/config"
	"github.com/vschuh/eurogrid/internal/db"
	"github.com/vschuh/eurogrid/internal/intersect"
	"github.com/vschuh/eurogrid/internal/merge"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *db.Pool, counter *intersect.Counter, compiler *condition.Compiler, merges *merge.Resolver, appCache *cache.Cache, cfg *config.Config, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, counter, compiler, merges, appCache, cfg, log)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Grids
		r.Get("/grid/{identifier}", h.GetGrid)
		r.Post("/grids", h.CreateCustomGrid)

		// Play
		r.Get("/players/search", h.SearchPlayers)
		r.Get("/validate", h.ValidateGuess)
		r.Post("/cells/answers", h.GetCellAnswers)
	})

	return r
}
