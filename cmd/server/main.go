// Command server runs the Krishi Mitra advisory API.
//
//	@title			Krishi Mitra API
//	@version		1.0
//	@description	Crop advisory, local context, suggestions, reference market prices and human-assistance requests for farmers.
//	@BasePath		/api/v1
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
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/krishi-mitra/docs"
	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/config"
	"github.com/tbourn/krishi-mitra/internal/enrich"
	httpapi "github.com/tbourn/krishi-mitra/internal/http"
	"github.com/tbourn/krishi-mitra/internal/observability"
	"github.com/tbourn/krishi-mitra/internal/repo"
	"github.com/tbourn/krishi-mitra/internal/scheduler"
	"github.com/tbourn/krishi-mitra/internal/search"
	"github.com/tbourn/krishi-mitra/internal/sysutil"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		sysutil.ConfigureLogger(os.Stderr, "info", false, "krishi-api")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty, "krishi-api")
	version = sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var model advisory.Model = advisory.Unconfigured{}
	if cfg.Gemini.APIKey != "" {
		m, err := advisory.NewGeminiModel(ctx, advisory.GeminiConfig{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.Gemini.Temperature,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create advisory model")
		}
		model = m
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; advice requests will answer 503")
	}

	var notes []search.Document
	if cfg.NotesPath != "" {
		if notes, err = search.LoadNotes(cfg.NotesPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.NotesPath).Msg("load suggestion notes")
		}
		log.Info().Int("notes", len(notes)).Msg("suggestion notes loaded")
	}

	sched, err := scheduler.New(db, cfg.IdempotencyPurge, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("create scheduler")
	}
	sched.Start()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg, httpapi.Deps{
		Advisor: advisory.NewGateway(model, cfg.Gemini.Timeout),
		Context: enrich.NewService(enrich.Config{
			GeocodeURL:      cfg.Enrich.GeocodeURL,
			WeatherURL:      cfg.Enrich.WeatherURL,
			UserAgent:       cfg.Enrich.UserAgent,
			Timeout:         cfg.Enrich.Timeout,
			GeocodeRPS:      cfg.Enrich.GeocodeRPS,
			BreakerFailures: cfg.Enrich.BreakerFailures,
			BreakerReset:    cfg.Enrich.BreakerReset,
		}),
		Notes: notes,
	})

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
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
	if err := shutdownOTel(shCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
