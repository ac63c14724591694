package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"clinic-cms/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()

	Configure(log, config.LogConfig{Level: "warn"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
}

func TestConfigure_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := logrus.New()
	Configure(log, config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestConfigure_WritesRotatedFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "app.log")
	log := logrus.New()

	Configure(log, config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &buf)
	log.Info("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}
