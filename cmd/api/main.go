package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/payportal/payportal/internal/bootstrap"
	"github.com/payportal/payportal/internal/controller"
	infraRedis "github.com/payportal/payportal/internal/infrastructure/redis"
	"github.com/payportal/payportal/internal/repository/postgres"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/internal/token"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "payportal-api", "payportal")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(app.Pool)
	paymentRepo := postgres.NewPaymentRepository(app.Pool)
	idempotencyRepo := postgres.NewIdempotencyRepository(app.Pool)
	tokenStore := infraRedis.NewTokenStore(app.Redis)

	// --- Services ---
	issuer := token.NewIssuer(app.Config.Auth.JWTSecret, app.Config.Auth.JWTExpiry)
	authService := service.NewAuthService(userRepo, issuer, tokenStore, app.Metrics)
	paymentService := service.NewPaymentService(paymentRepo, app.Metrics)
	employeeService := service.NewEmployeeService(userRepo)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:            app.Pool,
		RedisClient:     app.Redis,
		AuthService:     authService,
		PaymentService:  paymentService,
		EmployeeService: employeeService,
		IdempotencyRepo: idempotencyRepo,
		TokenChecker:    tokenStore,
		Logger:          app.Logger,
		Metrics:         app.Metrics,
		AuthConfig:      app.Config.Auth,
		ServerConfig:    app.Config.Server,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
