package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/gather/api/internal/config"
	"github.com/forgo/gather/api/internal/database"
	"github.com/forgo/gather/api/internal/handler"
	"github.com/forgo/gather/api/internal/middleware"
	"github.com/forgo/gather/api/internal/repository"
	"github.com/forgo/gather/api/internal/service"
	"github.com/forgo/gather/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Ensure unique indexes exist before serving traffic
	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Event date+time strings are interpreted in this zone
	location, err := time.LoadLocation(cfg.Events.Timezone)
	if err != nil {
		slog.Error("failed to load event timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
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
	if cfg.JWT.PrivateKeyPath == "" {
		slog.Warn("no JWT key configured, using ephemeral key pair")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	savedRepo := repository.NewSavedEventRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   userRepo,
		JWTService: jwtService,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo: eventRepo,
		UserRepo:  userRepo,
		SavedRepo: savedRepo,
		Location:  location,
	})

	savedService := service.NewSavedEventService(service.SavedEventServiceConfig{
		SavedRepo: savedRepo,
		EventRepo: eventRepo,
		UserRepo:  userRepo,
	})

	// Initialize handlers. Cookies are Secure outside development so local
	// plain-HTTP testing still works.
	authHandler := handler.NewAuthHandler(authService, !cfg.IsDevelopment())
	eventHandler := handler.NewEventHandler(eventService)
	savedHandler := handler.NewSavedEventHandler(savedService)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	authed := middleware.Auth(authService)

	// Set up routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(authHandler.Me)))

	// Event endpoints
	mux.HandleFunc("GET /api/events", eventHandler.List)
	mux.HandleFunc("GET /api/events/categories", eventHandler.Categories)
	mux.HandleFunc("GET /api/events/{id}", eventHandler.Get)
	mux.Handle("POST /api/events", authed(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("PUT /api/events/{id}", authed(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /api/events/{id}", authed(http.HandlerFunc(eventHandler.Delete)))
	mux.Handle("GET /api/events/user/my-events", authed(http.HandlerFunc(eventHandler.MyEvents)))
	mux.Handle("GET /api/events/user/stats", authed(http.HandlerFunc(eventHandler.Stats)))

	// Saved event endpoints
	mux.Handle("GET /api/saved", authed(http.HandlerFunc(savedHandler.List)))
	mux.Handle("GET /api/saved/check/{eventId}", authed(http.HandlerFunc(savedHandler.Check)))
	mux.Handle("POST /api/saved/{eventId}", authed(http.HandlerFunc(savedHandler.Save)))
	mux.Handle("DELETE /api/saved/{eventId}", authed(http.HandlerFunc(savedHandler.Unsave)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
