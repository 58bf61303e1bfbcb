package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"QUIZBOX_ADDR", "QUIZBOX_SHUTDOWN_TIMEOUT", "QUIZBOX_CORS_ORIGINS", "QUIZBOX_BANK",
		"QUIZBOX_DB_DRIVER", "QUIZBOX_DB", "QUIZBOX_RECORD", "QUIZBOX_LOG_LEVEL", "QUIZBOX_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.BankPath)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.RecordAttempts)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUIZBOX_ADDR", ":9000")
	t.Setenv("QUIZBOX_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("QUIZBOX_CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("QUIZBOX_BANK", "bank.yaml")
	t.Setenv("QUIZBOX_DB_DRIVER", "postgres")
	t.Setenv("QUIZBOX_DB", "postgres://localhost/quiz")
	t.Setenv("QUIZBOX_RECORD", "no")
	t.Setenv("QUIZBOX_LOG_FORMAT", "json")

	cfg := FromEnv()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "bank.yaml", cfg.BankPath)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/quiz", cfg.DBDSN)
	assert.False(t, cfg.RecordAttempts)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnvBadDurationFallsBack(t *testing.T) {
	t.Setenv("QUIZBOX_SHUTDOWN_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, FromEnv().ShutdownTimeout)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "debug", "json")
	require.NoError(t, err)
	log.Debug("hello", "n", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "DEBUG", line["level"])

	buf.Reset()
	log, err = NewLogger(&buf, "warn", "text")
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("kept")
	assert.False(t, strings.Contains(buf.String(), "dropped"))
	assert.True(t, strings.Contains(buf.String(), "msg=kept"))

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
