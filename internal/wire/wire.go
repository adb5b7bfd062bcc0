// internal/wire/wire.go
package wire

import (
	"net/http"

	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/internal/usecase"
	"court-booking/pkg/database"
	"court-booking/pkg/middleware"
	"court-booking/pkg/realtime"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the services the scheduler and event subscribers need
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the middleware chains shared by route groups
type guards struct {
	auth      func(http.Handler) http.Handler
	owner     func(http.Handler) http.Handler
	admin     func(http.Handler) http.Handler
	authLimit func(http.Handler) http.Handler
	hookLimit func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	db database.PgxIface,
	infra *usecase.Infra,
	hub *realtime.Hub,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, infra, config, logger)
	handler := adaptor.NewHandler(service, hub, db, logger)

	router := setupRouter(handler, repo, infra, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	infra *usecase.Infra,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// login/OTP and payment callbacks get separate buckets so gateway retries never starve users
	authLimiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond, config.RateLimit.Burst, logger)
	hookLimiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerSecond*4, config.RateLimit.Burst*4, logger)

	g := &guards{
		auth:      middleware.Auth(infra.Tokens, repo.Session, logger),
		owner:     middleware.RequireRole(logger, "owner", "admin"),
		admin:     middleware.RequireRole(logger, "admin"),
		authLimit: authLimiter.Limit,
		hookLimit: hookLimiter.Limit,
	}

	// Apply routes
	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireFacility(r, handler.Facility, handler.Court, handler.TimeSlot, g)
	wireBooking(r, handler.Booking, g)
	wirePayment(r, handler.Payment, handler.Commission, handler.Merchant, g)
	wireContent(r, handler.Comment, handler.Rating, handler.Slider, handler.Blog, g)

	// Realtime notifications; browsers pass the token as ?token=
	r.With(g.auth).Get("/ws", handler.Realtime.ServeWS)

	// Uploaded images
	if infra.Media != nil {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(infra.Media.Dir())))
		r.Handle("/uploads/*", fs)
	}

	// Health check endpoint
	r.Get("/health", handler.Health.Check)

	return r
}
