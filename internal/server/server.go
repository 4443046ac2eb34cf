// Package server wires the application together: database, services,
// handlers, middleware and routes. It is the composition root — every
// dependency is constructed here or in main, never reached through a
// global.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/habitap/habitap/internal/auth"
	"github.com/habitap/habitap/internal/config"
	"github.com/habitap/habitap/internal/handler"
	"github.com/habitap/habitap/internal/middleware"
	sqliteRepo "github.com/habitap/habitap/internal/repository/sqlite"
	"github.com/habitap/habitap/internal/service"
)

// Server owns the router, the database connection and the listener
// lifecycle. The database is closed when Start returns.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph:
//
//	sqlite.DB → services → handlers → routes
//
// Services receive the repository interfaces (not the concrete DB), and
// handlers receive the services. The handler layer never touches SQL; the
// service layer never touches HTTP.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens, auth.NewPasswordService())

	return s, nil
}

// newForTest builds a server on an in-memory database with a cheap bcrypt
// cost. Used by the end-to-end tests in this package.
func newForTest(cfg config.Config, logger *slog.Logger, passwords *auth.PasswordService) (*Server, error) {
	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens, passwords)

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
//	GET  /                   → welcome
//	GET  /metrics            → prometheus
//	POST /users/             → register
//	POST /token              → login, returns bearer token
//	GET  /users/me/          → current user          (bearer)
//	GET  /habits/            → list habits           (bearer)
//	POST /habits/            → create habit          (bearer)
//	GET  /habits/{name}      → habit by name         (bearer)
//	GET  /entries/{habit_id} → entries for habit     (bearer)
//	POST /entries/           → create entry          (bearer)
func (s *Server) setupRoutes(tokens *auth.TokenService, passwords *auth.PasswordService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(routePattern))

	userService := service.NewUserService(s.db, passwords, tokens, s.logger)
	habitService := service.NewHabitService(s.db, s.logger)
	entryService := service.NewEntryService(s.db, s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	habitHandler := handler.NewHabitHandler(habitService, s.logger)
	entryHandler := handler.NewEntryHandler(entryService, s.logger)

	requireUser := auth.RequireUser(tokens, s.db)

	s.router.Get("/", handler.HandleRoot)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Post("/users/", userHandler.HandleRegister)
	s.router.Post("/token", userHandler.HandleToken)

	s.router.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/users/me/", userHandler.HandleMe)

		r.Get("/habits/", habitHandler.HandleList)
		r.Post("/habits/", habitHandler.HandleCreate)
		r.Get("/habits/{name}", habitHandler.HandleGetByName)

		r.Get("/entries/{habit_id}", entryHandler.HandleListByHabit)
		r.Post("/entries/", entryHandler.HandleCreate)
	})
}

// routePattern labels metrics with the chi route pattern ("/habits/{name}")
// instead of the concrete path, keeping series cardinality bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until SIGINT/SIGTERM, then drains in-flight requests
// for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DatabasePath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
