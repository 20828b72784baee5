package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/payportal/payportal/internal/domain/user"
	"github.com/payportal/payportal/internal/infrastructure/config"
	"github.com/payportal/payportal/internal/infrastructure/observability"
	customMW "github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/repository/postgres"
	"github.com/payportal/payportal/internal/service"
)

type RouterDeps struct {
	Pool            *pgxpool.Pool
	RedisClient     *redis.Client
	AuthService     *service.AuthService
	PaymentService  *service.PaymentService
	EmployeeService *service.EmployeeService
	IdempotencyRepo *postgres.IdempotencyRepository
	TokenChecker    customMW.TokenChecker
	Logger          zerolog.Logger
	Metrics         *observability.Metrics
	AuthConfig      config.AuthConfig
	ServerConfig    config.ServerConfig
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.ServerConfig.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.ServerConfig.CORS.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	authH := NewAuthController(deps.AuthService)
	paymentH := NewPaymentController(deps.PaymentService)
	employeeH := NewEmployeeController(deps.PaymentService)
	adminH := NewAdminController(deps.EmployeeService)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	requireAuth := customMW.RequireAuth(deps.AuthConfig.JWTSecret, deps.TokenChecker, deps.Logger)
	idempotencyMW := customMW.Idempotency(deps.IdempotencyRepo)
	rateLimitMW := customMW.RateLimit(deps.ServerConfig.RequestsPerMinute)

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints are rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMW)
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/auth/logout", authH.Logout)
		})

		// Customer portal
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(customMW.RequireRole(string(user.RoleCustomer)))
			r.With(idempotencyMW).Post("/payments", paymentH.Create)
			r.Get("/payments", paymentH.List)
		})

		// Employee portal
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(customMW.RequireRole(string(user.RoleEmployee), string(user.RoleAdmin)))
			r.Get("/employee/payments/pending", employeeH.Pending)
			r.Get("/employee/payments/history", employeeH.History)
			r.Put("/employee/payments/{id}", employeeH.Decide)
		})

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(customMW.RequireRole(string(user.RoleAdmin)))
			r.Get("/admin/employees", adminH.List)
			r.Post("/admin/employees", adminH.Create)
			r.Delete("/admin/employees/{id}", adminH.Delete)
		})
	})

	return r
}
