package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	previousLevel := base.GetLevel()
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		base.SetLevel(previousLevel)
	})
	return buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestLoggerFields(t *testing.T) {
	buf := captureOutput(t)

	BuildLogger().With("technique", "low-contrast").WithError(errors.New("boom")).Error("failed")

	entry := lastEntry(t, buf)
	assert.Equal(t, "failed", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "low-contrast", entry["technique"])
	assert.Equal(t, "boom", entry["error"])
}

func TestBuildLoggerFromCtx(t *testing.T) {
	buf := captureOutput(t)
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("POST", "/api/v1/transform/low-opacity", nil)
	ctx.Set(RequestIDKey, "abc-123")

	BuildLoggerFromCtx(ctx).Info("handled")

	entry := lastEntry(t, buf)
	assert.Equal(t, "/api/v1/transform/low-opacity", entry["path"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "abc-123", entry[RequestIDKey])
}

func TestConfigure(t *testing.T) {
	buf := captureOutput(t)

	require.NoError(t, Configure("warn"))
	BuildLogger().Info("hidden")
	assert.Empty(t, buf.String())

	BuildLogger().Warn("shown")
	assert.Equal(t, "shown", lastEntry(t, buf)["msg"])

	assert.Error(t, Configure("loud"))
}
