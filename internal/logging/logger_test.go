package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTo_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := InitTo(&buf, "debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	WithComponent(log, "store").WithField("events", 3).Info("snapshot loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "snapshot loaded", entry["msg"])
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, 3.0, entry["events"])
}

func TestInitTo_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := InitTo(&buf, "loud", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid_level=loud")
	assert.Same(t, log, Get())
}
