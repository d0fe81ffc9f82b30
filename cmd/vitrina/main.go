// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/vitrina-go/internal/cache"
	"github.com/olegiv/vitrina-go/internal/config"
	"github.com/olegiv/vitrina-go/internal/handler"
	"github.com/olegiv/vitrina-go/internal/mailer"
	"github.com/olegiv/vitrina-go/internal/middleware"
	"github.com/olegiv/vitrina-go/internal/render"
	"github.com/olegiv/vitrina-go/internal/session"
	"github.com/olegiv/vitrina-go/internal/store"
	"github.com/olegiv/vitrina-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Vitrina - content-managed marketing site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_DB_PATH           SQLite database path (default: ./data/vitrina.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_ADMIN_PASSWORD    Seed password for the default admin account\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_REDIS_URL         Redis URL for the content cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  VITRINA_SMTP_HOST         SMTP host for registration notices (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("vitrina %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Seed default content and the admin account
	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Content cache: memory by default, Redis when configured
	contentCache, usingRedis := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		CleanupInterval: time.Minute,
	})
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	switch {
	case usingRedis && cfg.UseRedisCache():
		slog.Info("content cache initialized", "backend", "redis", "url", cfg.RedisURL)
	case cfg.UseRedisCache():
		slog.Warn("content cache initialized", "backend", "memory", "note", "Redis unavailable, using fallback")
	default:
		slog.Info("content cache initialized", "backend", "memory")
	}
	content := cache.NewContent(contentCache)

	// Initialize template renderer
	renderer, err := render.New(render.Config{
		TemplatesFS:    web.TemplatesFS(),
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	// Registration notices
	notifier := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.NoticeFrom,
		To:       cfg.NoticeTo,
	})
	if cfg.NotificationsEnabled() {
		slog.Info("registration notices enabled", "smtp_host", cfg.SMTPHost)
	} else {
		slog.Info("registration notices disabled")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, notifier)
	siteHandler := handler.NewSiteHandler(db, renderer, content)
	adminHandler := handler.NewAdminHandler(db, renderer, content)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(sessionManager, db))

	// Public routes
	r.Get(handler.RouteRoot, handler.Root)
	r.Get(handler.RouteRegister, authHandler.RegisterForm)
	r.Post(handler.RouteRegister, authHandler.Register)
	r.Get(handler.RouteLogout, authHandler.Logout)
	r.Get(handler.RouteContact, siteHandler.ContactForm)
	r.Post(handler.RouteContact, siteHandler.ContactSubmit)

	// Pages for signed-in visitors
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sessionManager))
		r.Get(handler.RouteAboutProduct, siteHandler.AboutProduct)
		r.Get(handler.RouteDrafts, siteHandler.Drafts)
		r.Get(handler.RoutePlans, siteHandler.Plans)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(sessionManager, db))
		r.Get(handler.RouteAdmin, adminHandler.Dashboard)
		r.Get(handler.RouteAdminMarkRead, adminHandler.MarkRead)
		r.Get(handler.RouteAdminDelete, adminHandler.Delete)
		r.Get(handler.RouteEditText, adminHandler.EditTextForm)
		r.Post(handler.RouteEditText, adminHandler.EditTextSubmit)
		r.Get(handler.RouteEditPage, adminHandler.EditPageForm)
		r.Post(handler.RouteEditPage, adminHandler.EditPageSubmit)
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
