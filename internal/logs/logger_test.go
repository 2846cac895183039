package logs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Setenv("GIN_MODE", "")

	log, err := New(WithLevel("warn"))
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(WithLevel("verbose"))
	require.Error(t, err)

	assert.Panics(t, func() { MustNew(WithLevel("verbose")) })
}

func TestNew_InitialFields(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	out := filepath.Join(t.TempDir(), "app.log")

	log, err := New(
		WithOutput(out),
		WithInitialFields(map[string]any{"service": "shortlink"}),
		WithInitialFields(map[string]any{"version": "v1.2.3"}),
	)
	require.NoError(t, err)

	log.Info("started", zap.String("storage", "inMemory"))
	_ = log.Sync()

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"service":"shortlink"`)
	assert.Contains(t, string(raw), `"version":"v1.2.3"`)
	assert.Contains(t, string(raw), `"storage":"inMemory"`)
	assert.Contains(t, string(raw), `"level":"info"`)
}

func TestNewLogrus(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	var buf bytes.Buffer
	logger := NewLogrus(&buf, "warning")
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("skipped")
	logger.WithField("shortUrl", "abc123").Warn("written")

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), `"shortUrl":"abc123"`)
}
