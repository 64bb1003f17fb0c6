// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting, then mounts the public intake,
// auth, and admin routes.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/CalebBennett-Harper/locus/internal/config"
	"github.com/CalebBennett-Harper/locus/internal/domain"
	"github.com/CalebBennett-Harper/locus/internal/http/handlers"
	"github.com/CalebBennett-Harper/locus/internal/http/middleware"
	"github.com/CalebBennett-Harper/locus/internal/mail"
	"github.com/CalebBennett-Harper/locus/internal/repo"
	"github.com/CalebBennett-Harper/locus/internal/services"
)

// signupRepoShim adapts the repository free functions to the
// services.SignupRepo interface expected by WaitlistService. This keeps
// services decoupled from the concrete repo package while reusing the
// existing functions.
type signupRepoShim struct{}

func (signupRepoShim) CreateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error) {
	return repo.CreateSignup(ctx, db, s)
}

func (signupRepoShim) ListSignups(ctx context.Context, db *gorm.DB) ([]domain.Signup, error) {
	return repo.ListSignups(ctx, db)
}

func (signupRepoShim) GetSignup(ctx context.Context, db *gorm.DB, id string) (*domain.Signup, error) {
	return repo.GetSignup(ctx, db, id)
}

func (signupRepoShim) UpdateSignupStatus(ctx context.Context, db *gorm.DB, id, status string, notes *string) (*domain.Signup, error) {
	return repo.UpdateSignupStatus(ctx, db, id, status, notes)
}

func (signupRepoShim) UpdateSignup(ctx context.Context, db *gorm.DB, s *domain.Signup) (*domain.Signup, error) {
	return repo.UpdateSignup(ctx, db, s)
}

func (signupRepoShim) DeleteSignup(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteSignup(ctx, db, id)
}

func (signupRepoShim) SignupStats(ctx context.Context, db *gorm.DB) (domain.Stats, error) {
	return repo.SignupStats(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, mailer *mail.Mailer, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction; signup payloads are PII-heavy
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; the largest legal payload is a full
	// admin edit
	r.Use(limitBody(64 << 10))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP. The public intake is the
	// only unauthenticated write path.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) CORS posture. The session rides in a cookie, so credentials are
	// only allowed against an explicit origin allowlist.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: services ← repo/db/mailer
	authSvc := &services.AuthService{
		DB:         db,
		AdminEmail: cfg.Auth.AdminEmail,
		SiteURL:    cfg.SiteURL,
		Mailer:     mailer,
		TokenTTL:   cfg.Auth.MagicLinkTTL,
		SessionTTL: cfg.Auth.SessionTTL,
	}

	// Denied public writes retry once through the fallback: a remote
	// privileged endpoint when configured, otherwise this process's own
	// unrestricted handle.
	var fallback services.FallbackWriter
	if cfg.FallbackURL != "" {
		fallback = &services.HTTPFallback{BaseURL: cfg.FallbackURL}
	} else {
		fallback = &services.DBFallback{DB: db, Repo: signupRepoShim{}}
	}

	waitlistSvc := &services.WaitlistService{
		DB:       db,
		Repo:     signupRepoShim{},
		Fallback: fallback,
		OnCreate: mailer.SendWelcome,
	}

	privileged := &services.DBFallback{DB: db, Repo: signupRepoShim{}}

	h := handlers.New(waitlistSvc, authSvc, privileged, mailer, handlers.Options{
		SecureCookies: cfg.Auth.SecureCookies,
		SessionTTL:    cfg.Auth.SessionTTL,
	})

	// Liveness/health
	r.GET("/health", h.Health)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/waitlist", h.SubmitWaitlist)
		api.POST("/signup", h.PrivilegedSignup)
		api.POST("/send-welcome-email", h.SendWelcomeEmail)

		auth := api.Group("/auth")
		{
			auth.POST("/magic-link", h.RequestMagicLink)
			auth.GET("/callback", h.Callback)
			auth.GET("/session", h.SessionInfo)
			auth.POST("/signout", h.SignOut)
		}

		admin := api.Group("/admin",
			middleware.RequireAdmin(authSvc),
			gzip.Gzip(gzip.DefaultCompression))
		{
			admin.GET("/signups", h.ListSignups)
			admin.GET("/stats", h.GetStats)
			admin.PATCH("/signups/:id/status", h.UpdateStatus)
			admin.PUT("/signups/:id", h.UpdateSignup)
			admin.DELETE("/signups/:id", h.DeleteSignup)
		}

		// CSV download lives outside /admin but behind the same gate.
		api.GET("/export",
			middleware.RequireAdmin(authSvc),
			gzip.Gzip(gzip.DefaultCompression),
			h.ExportCSV)
	}

	// API docs (dev/staging only)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Oversized requests fail on the first body read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
