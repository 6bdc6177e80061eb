package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNew_WritesAppAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.AppConfig{Name: "hrms", Version: "v9", Env: "test", LogLevel: "info"})

	log.Debug("hidden")
	log.Info("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hrms", entry["app"])
	assert.Equal(t, "v9", entry["version"])
	assert.Equal(t, "test", entry["env"])
}
