package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWithCore_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewWithCore(core).WithFields(map[string]interface{}{"invocationId": "inv-7"})

	log.Debug("dropped", nil)
	log.Info("prediction complete", map[string]interface{}{"price": 12.5})
	log.WithError(errors.New("boom")).Error("prediction failed", map[string]interface{}{"errorCode": "UNEXPECTED_ERROR"})

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "prediction complete", entries[0].Message)
	assert.Equal(t, "inv-7", first["invocationId"])
	assert.Equal(t, 12.5, first["price"])

	second := entries[1].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "UNEXPECTED_ERROR", second["errorCode"])
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn", "json")

	log.Info("suppressed", nil)
	log.Warn("artifact declares a different box-cox lambda", map[string]interface{}{"declaredLambda": 0.5})
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "artifact declares a different box-cox lambda", entry["msg"])
	assert.Equal(t, 0.5, entry["declaredLambda"])
}

func TestNewWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "debug", "console")

	log.Debug("features encoded", map[string]interface{}{"fieldCount": 8})

	assert.Contains(t, buf.String(), "features encoded")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	assert.NotPanics(t, func() {
		log.With(map[string]interface{}{"a": 1}).Error("ignored", nil)
	})
}
