package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("debug")
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestGetLoggerWithName(t *testing.T) {
	buf := captureOutput(t)

	logger := GetLoggerWithName("splitter")
	logger.Info("feature scanned", SamplesKey, 128, FoundKey, true)

	entry := lastEntry(t, buf)
	assert.Equal(t, "splitter", entry[ComponentKey])
	assert.Equal(t, "feature scanned", entry["message"])
	assert.Equal(t, float64(128), entry[SamplesKey])
	assert.Equal(t, true, entry[FoundKey])
}

func TestWith(t *testing.T) {
	buf := captureOutput(t)

	logger := GetLogger().With(FeatureKey, 3)
	logger.Debug("candidate recorded", ThresholdKey, 1.5)

	entry := lastEntry(t, buf)
	assert.Equal(t, float64(3), entry[FeatureKey])
	assert.Equal(t, 1.5, entry[ThresholdKey])
}

func TestErrorAttachesError(t *testing.T) {
	buf := captureOutput(t)

	logger := GetLoggerWithName("histogram")
	logger.Error("build failed", assert.AnError, OperationKey, "build")

	entry := lastEntry(t, buf)
	assert.Contains(t, entry, "error")
	assert.Equal(t, "build", entry[OperationKey])
}

func TestSetLevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("warn")

	GetLogger().Debug("suppressed")
	GetLogger().Info("suppressed")
	assert.Zero(t, buf.Len())

	GetLogger().Warn("emitted")
	assert.NotZero(t, buf.Len())

	// Restore for other tests.
	SetLevel("info")
}
