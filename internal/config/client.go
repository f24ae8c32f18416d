package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	APIURL        string        // KRISHI_API_URL, base URL of the advisory server incl. API base path
	StateDir      string        // KRISHI_STATE_DIR, where the local key-value database lives
	SpeechCommand string        // KRISHI_SPEECH_COMMAND, e.g. "espeak-ng"; empty disables read-aloud
	Timeout       time.Duration // KRISHI_CLIENT_TIMEOUT, per-request HTTP timeout
	LogLevel      string        // LOG_LEVEL
}

// DBPath returns the path of the client's local state database.
func (c ClientConfig) DBPath() string {
	return filepath.Join(c.StateDir, "state.db")
}

// LoadClient reads the terminal client configuration from the environment.
func LoadClient() (ClientConfig, error) {
	cfg := ClientConfig{
		APIURL:        strings.TrimRight(getenv("KRISHI_API_URL", "http://localhost:8080/api/v1"), "/"),
		StateDir:      getenv("KRISHI_STATE_DIR", defaultStateDir()),
		SpeechCommand: getenv("KRISHI_SPEECH_COMMAND", "espeak-ng"),
		Timeout:       getdur("KRISHI_CLIENT_TIMEOUT", 60*time.Second),
		LogLevel:      normalizeLogLevel(strings.ToLower(getenv("LOG_LEVEL", "warn"))),
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		return cfg, errors.New("KRISHI_API_URL must be an http(s) URL")
	}
	if strings.TrimSpace(cfg.StateDir) == "" {
		return cfg, errors.New("KRISHI_STATE_DIR must not be empty")
	}
	if cfg.Timeout <= 0 {
		return cfg, errors.New("KRISHI_CLIENT_TIMEOUT must be > 0")
	}
	return cfg, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "krishi-mitra")
	}
	return ".krishi-mitra"
}
