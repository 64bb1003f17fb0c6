// Command server runs the Locus waitlist API: public signup intake,
// magic-link admin auth, and the review dashboard backend.
//
// @title        Locus Waitlist API
// @version      1.0
// @description  Waitlist intake, admin review, and magic-link auth for the Locus landing page.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/CalebBennett-Harper/locus/docs"
	"github.com/CalebBennett-Harper/locus/internal/config"
	httpapi "github.com/CalebBennett-Harper/locus/internal/http"
	"github.com/CalebBennett-Harper/locus/internal/mail"
	"github.com/CalebBennett-Harper/locus/internal/observability"
	"github.com/CalebBennett-Harper/locus/internal/repo"
	"github.com/CalebBennett-Harper/locus/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op shutdown when disabled)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing plugin failed")
		}
	}

	// Expired tokens and sessions are swept hourly.
	go pruneLoop(ctx, db)

	// Email: real delivery needs production plus an API key, otherwise
	// messages go to the log.
	var sender mail.Sender
	if cfg.IsProduction() && cfg.Email.ResendAPIKey != "" {
		sender = mail.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	} else {
		sender = mail.LogSender{}
	}
	mailer := &mail.Mailer{Sender: sender, From: cfg.Email.From}

	r := gin.New()
	httpapi.RegisterRoutes(r, db, mailer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// pruneLoop deletes expired login tokens and sessions once an hour until ctx
// is canceled.
func pruneLoop(ctx context.Context, db *gorm.DB) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if err := repo.PruneAuth(ctx, db, now.UTC()); err != nil {
				log.Warn().Err(err).Msg("auth prune failed")
			}
		}
	}
}
