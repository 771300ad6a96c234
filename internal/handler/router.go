package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/service"
)

// RouterConfig wires the services into the HTTP API.
// Profile routes are only mounted when Profiles is non-nil.
type RouterConfig struct {
	Generator      *service.GeneratorService
	Profiles       *service.ProfileService
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the API router.
func NewRouter(cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)

		if cfg.Profiles == nil {
			return
		}
		profileHandler := NewProfileHandler(cfg.Profiles)

		r.Post("/api/v1/profiles", profileHandler.HandleCreate)
		r.Route("/api/v1/profiles/{profile_id}", func(r chi.Router) {
			r.Use(middleware.ProfileAuth(cfg.JWTSecret))
			r.Get("/", profileHandler.HandleGet)
			r.Put("/", profileHandler.HandleUpdate)
			r.Delete("/", profileHandler.HandleDelete)
			r.Post("/generate", profileHandler.HandleGenerate)
		})
	})

	return r
}
