// Package config reads process settings from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Config holds the settings shared by the CLI, the terminal UI and the
// HTTP server. Command-line flags override these values.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// BankPath is a JSON or YAML bank file; empty means the built-in bank.
	BankPath string

	DBDriver string // sqlite|postgres
	DBDSN    string // file path for sqlite; empty means the default location

	// RecordAttempts stores every scored submission in the history table.
	RecordAttempts bool

	LogLevel  string
	LogFormat string // text|json
}

// FromEnv builds a Config from QUIZBOX_* variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOr("QUIZBOX_ADDR", "127.0.0.1:8080"),
		ShutdownTimeout: envDuration("QUIZBOX_SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     csvOr("QUIZBOX_CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		BankPath:        os.Getenv("QUIZBOX_BANK"),
		DBDriver:        envOr("QUIZBOX_DB_DRIVER", "sqlite"),
		DBDSN:           os.Getenv("QUIZBOX_DB"),
		RecordAttempts:  envBool("QUIZBOX_RECORD", true),
		LogLevel:        envOr("QUIZBOX_LOG_LEVEL", "info"),
		LogFormat:       envOr("QUIZBOX_LOG_FORMAT", "text"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	parts := strings.Split(envOr(k, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
