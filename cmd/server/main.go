package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/gatekeeper/internal/config"
	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/handler"
	"github.com/forgo/gatekeeper/internal/middleware"
	"github.com/forgo/gatekeeper/internal/repository"
	"github.com/forgo/gatekeeper/pkg/jwt"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.IsDevelopment() {
		level.Set(slog.LevelDebug)
	}
	slog.Debug("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.String("guard", cfg.JWT.Guard),
	)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var (
		users  handler.UserReader
		pinger handler.Pinger
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		users = repository.NewMemoryStore()
		slog.Warn("using in-memory store; data is lost on restart")
	default:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(context.Background()); err != nil {
			slog.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		slog.Info("connected to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Database),
		)
		users = repository.NewUserRepository(db)
		pinger = db
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthHandler := handler.NewHealthHandler(pinger)
	meHandler := handler.NewMeHandler(users)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Get)

	authMiddleware := middleware.Auth(jwtService, cfg.JWT.Guard)
	mux.Handle("GET /v1/me", authMiddleware(http.HandlerFunc(meHandler.Get)))

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("guard", cfg.JWT.Guard),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
