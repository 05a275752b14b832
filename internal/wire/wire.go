package wire

import (
	"filme-catalog/internal/adaptor"
	"filme-catalog/internal/data/repository"
	"filme-catalog/internal/usecase"
	"filme-catalog/pkg/middleware"
	"filme-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the pieces that need shutting down.
type App struct {
	Router  *chi.Mux
	limiter *middleware.RateLimiter
}

// Close stops background work started by Wiring.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, logger)
	handler := adaptor.NewHandler(service, repo, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit, logger)

	return &App{
		Router:  setupRouter(handler, limiter, config, logger),
		limiter: limiter,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	r.Get("/health", handler.Health.Check)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)
		wireFilme(r, handler.Filme)
	})

	return r
}
