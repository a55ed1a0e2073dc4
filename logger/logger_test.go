package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "debug", "json")
	defer InitTo(os.Stderr, "info", "text")

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	log.WithField("step", 3).Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, float64(3), entry["step"])
}

func TestInitUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "loud", "text")
	defer InitTo(os.Stderr, "info", "text")

	assert.Equal(t, log.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	InitTo(&buf, "debug", "text")
	defer InitTo(os.Stderr, "info", "text")

	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
