package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/claimwizard/internal/config"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimwizard.log")

	log, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	log.Info("session created")
	log.Debug("below level")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"session created"`)
	assert.Contains(t, string(raw), `"level":"INFO"`)
	assert.NotContains(t, string(raw), "below level")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
