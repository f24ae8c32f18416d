// Package httpapi wires the HTTP transport (Gin) to the advisory services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
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

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/config"
	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/http/handlers"
	"github.com/tbourn/krishi-mitra/internal/http/middleware"
	"github.com/tbourn/krishi-mitra/internal/render"
	"github.com/tbourn/krishi-mitra/internal/repo"
	"github.com/tbourn/krishi-mitra/internal/search"
	"github.com/tbourn/krishi-mitra/internal/services"
)

// Deps are the non-database collaborators of the API. A nil Advisor or
// Context disables the matching endpoint (503 and empty context respectively).
type Deps struct {
	Advisor advisory.Advisor
	Context handlers.ContextService
	Notes   []search.Document
}

// assistanceRepoShim adapts the repository free functions to the
// services.AssistanceRepo interface.
type assistanceRepoShim struct{}

func (assistanceRepoShim) CreateAssistanceRequest(ctx context.Context, db *gorm.DB, phone, issue, lang string) (*domain.AssistanceRequest, error) {
	return repo.CreateAssistanceRequest(ctx, db, phone, issue, lang)
}

func (assistanceRepoShim) GetAssistanceRequest(ctx context.Context, db *gorm.DB, id string) (*domain.AssistanceRequest, error) {
	return repo.GetAssistanceRequest(ctx, db, id)
}

func (assistanceRepoShim) GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, db, scope, key, now)
}

func (assistanceRepoShim) CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return repo.CreateIdempotency(ctx, db, scope, key, resourceID, status, ttl)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip for JSON responses
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, deps Deps) {
	r.HandleMethodNotAllowed = true
	apiBase := cfg.APIBasePath

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key", "X-Goog-Api-Key"},
	}))
	r.Use(middleware.Recovery())

	r.Use(limitBody(cfg.MaxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	assistPath := joinPath(apiBase, "/assistance")
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope: middleware.ScopeByRoute(map[string]string{
				http.MethodPost + " " + assistPath: services.IdempotencyScopeAssistance,
			}),
		},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if err != nil || rec == nil {
				return false, err
			}
			return true, nil
		},
	))

	if cfg.RateLimit.RPS > 0 {
		rl := middleware.NewRateLimiter("global", cfg.RateLimit.RPS, cfg.RateLimit.Burst, middleware.KeyByClientIP())
		r.Use(rl.Handler())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Location", "Idempotent-Replay", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Browsers on any origin may call the API; ACAO is forced even without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		corsCfg.AllowAllOrigins = true
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		EnablePolicy:    true,
		NoStorePrefixes: []string{assistPath},
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/advisor/notes
	var adviceSvc handlers.AdviceService
	if deps.Advisor != nil {
		adviceSvc = services.NewAdviceService(deps.Advisor, render.New())
	}
	assistSvc := services.NewAssistanceService(db, assistanceRepoShim{})
	assistSvc.IdempotencyTTL = cfg.IdempotencyTTL
	h := handlers.New(adviceSvc, deps.Context, services.NewSuggestionService(deps.Notes), assistSvc)

	adviceChain := []gin.HandlerFunc{}
	if cfg.RateLimit.AdviceRPS > 0 {
		arl := middleware.NewRateLimiter("advice", cfg.RateLimit.AdviceRPS, cfg.RateLimit.AdviceBurst, middleware.KeyByClientIP())
		adviceChain = append(adviceChain, arl.Handler())
	}
	adviceChain = append(adviceChain, h.PostCrops)

	api := groupWithPrefix(r, apiBase)
	{
		api.POST("/crops", adviceChain...)
		api.GET("/context", h.GetContext)
		api.GET("/suggestions", h.GetSuggestions)
		api.GET("/market/prices", h.ListMarketPrices)

		api.POST("/assistance", h.PostAssistance)
		api.GET("/assistance/:id", h.GetAssistance)
	}
}

// limitBody caps the request body at maxBytes. Requests that declare a larger
// Content-Length are rejected with 413 up front; others get an
// http.MaxBytesReader so streaming bodies fail on read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			handlers.Fail(c, http.StatusRequestEntityTooLarge, handlers.ErrCodeBodyTooLarge, "request body too large")
			return
		}
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

func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	return base + p
}
