// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes settings for the API
// server (timeouts, logging, database path, advisory model, enrichment
// upstreams, observability) and for the terminal client.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxBodyBytes fits a 10 MiB image (the client's upload cap) once
// base64 encoded, plus the JSON envelope and a prompt.
const DefaultMaxBodyBytes = 16 << 20

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// RateLimitConfig defines per-client token buckets. RPS <= 0 disables a limiter.
type RateLimitConfig struct {
	RPS         float64 // RATE_RPS, all API routes
	Burst       int     // RATE_BURST
	AdviceRPS   float64 // ADVICE_RPS, POST /crops only
	AdviceBurst int     // ADVICE_BURST
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "krishi-mitra")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// GeminiConfig holds settings for the generative model behind the advisory gateway.
type GeminiConfig struct {
	APIKey      string        // GEMINI_API_KEY
	Model       string        // GEMINI_MODEL
	Temperature float32       // GEMINI_TEMPERATURE
	Timeout     time.Duration // ADVICE_TIMEOUT
}

// EnrichConfig holds the upstreams used for best-effort location/weather lookups.
type EnrichConfig struct {
	GeocodeURL      string        // GEOCODE_BASE_URL
	WeatherURL      string        // WEATHER_BASE_URL
	UserAgent       string        // ENRICH_USER_AGENT
	Timeout         time.Duration // ENRICH_TIMEOUT
	GeocodeRPS      float64       // GEOCODE_RPS
	BreakerFailures int           // ENRICH_BREAKER_FAILURES
	BreakerReset    time.Duration // ENRICH_BREAKER_RESET
}

// Config holds all configuration values for the API server.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	MaxBodyBytes      int64         // request body cap (images arrive base64 encoded)
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath    string // SQLite path
	NotesPath string // optional markdown notes indexed for suggestion search

	// Advisory model
	Gemini GeminiConfig

	// Enrichment
	Enrich EnrichConfig

	// Web protection
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig

	// Idempotency
	IdempotencyTTL   time.Duration // how long a given Idempotency-Key is valid
	IdempotencyPurge string        // cron expression for purging expired keys

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:      int64(getint("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:    getenv("DB_PATH", "krishi.db"),
		NotesPath: getenv("SUGGESTIONS_NOTES_PATH", ""),

		Gemini: GeminiConfig{
			APIKey:      getenv("GEMINI_API_KEY", ""),
			Model:       getenv("GEMINI_MODEL", "gemini-1.5-flash"),
			Temperature: float32(getfloat("GEMINI_TEMPERATURE", 0.4)),
			Timeout:     getdur("ADVICE_TIMEOUT", 45*time.Second),
		},

		Enrich: EnrichConfig{
			GeocodeURL:      strings.TrimRight(getenv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
			WeatherURL:      strings.TrimRight(getenv("WEATHER_BASE_URL", "https://api.open-meteo.com"), "/"),
			UserAgent:       getenv("ENRICH_USER_AGENT", "krishi-mitra/1.0"),
			Timeout:         getdur("ENRICH_TIMEOUT", 5*time.Second),
			GeocodeRPS:      getfloat("GEOCODE_RPS", 1.0),
			BreakerFailures: getint("ENRICH_BREAKER_FAILURES", 5),
			BreakerReset:    getdur("ENRICH_BREAKER_RESET", 30*time.Second),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RPS:         getfloat("RATE_RPS", 5),
			Burst:       getint("RATE_BURST", 10),
			AdviceRPS:   getfloat("ADVICE_RPS", 0.5),
			AdviceBurst: getint("ADVICE_BURST", 3),
		},

		// Idempotency
		IdempotencyTTL:   getdur("IDEMPOTENCY_TTL", 24*time.Hour),
		IdempotencyPurge: getenv("IDEMPOTENCY_PURGE_CRON", "*/30 * * * *"),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "krishi-mitra"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	cfg.LogLevel = normalizeLogLevel(cfg.LogLevel)
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, errors.New("MAX_BODY_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		return cfg, errors.New("GEMINI_MODEL must not be empty")
	}
	if cfg.Gemini.Temperature < 0 || cfg.Gemini.Temperature > 2 {
		return cfg, errors.New("GEMINI_TEMPERATURE must be between 0 and 2")
	}
	if cfg.Gemini.Timeout <= 0 {
		return cfg, errors.New("ADVICE_TIMEOUT must be > 0")
	}
	if cfg.Enrich.Timeout <= 0 {
		return cfg, errors.New("ENRICH_TIMEOUT must be > 0")
	}
	if cfg.Enrich.GeocodeRPS <= 0 {
		return cfg, errors.New("GEOCODE_RPS must be > 0")
	}
	if cfg.Enrich.BreakerFailures < 1 {
		return cfg, errors.New("ENRICH_BREAKER_FAILURES must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1 when RATE_RPS is set")
	}
	if cfg.RateLimit.AdviceRPS > 0 && cfg.RateLimit.AdviceBurst < 1 {
		return cfg, errors.New("ADVICE_BURST must be >= 1 when ADVICE_RPS is set")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.IdempotencyPurge) == "" {
		return cfg, errors.New("IDEMPOTENCY_PURGE_CRON must not be empty")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizeLogLevel(lvl string) string {
	if lvl == "warning" {
		return "warn"
	}
	return lvl
}

func validateLogLevel(lvl string) error {
	switch lvl {
	case "debug", "info", "warn", "error", "fatal", "panic":
		return nil
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
