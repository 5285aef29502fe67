package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, "debug", c.Server.Mode)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, c.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, c.Server.IdleTimeout)
	assert.Equal(t, int64(25<<20), c.Server.MaxBodyBytes)
	assert.Equal(t, "default", c.Image.PNGCompression)
	assert.Equal(t, 40_000_000, c.Image.MaxPixels)
	assert.Equal(t, []string{"eng"}, c.OCR.Languages)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
  mode: release
  write_timeout: 45s
image:
  png_compression: best
ocr:
  languages: [eng, deu]
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, "release", c.Server.Mode)
	assert.Equal(t, 45*time.Second, c.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout, "unset keys keep their default")
	assert.Equal(t, "best", c.Image.PNGCompression)
	assert.Equal(t, []string{"eng", "deu"}, c.OCR.Languages)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"9090\"\n")
	t.Setenv("ADVISION_SERVER_PORT", "7070")
	t.Setenv("ADVISION_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("ADVISION_SERVER_PORT", "7070")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "8080", "")
	require.NoError(t, flags.Parse([]string{"--port", "6060"}))

	v, err := NewViper("")
	require.NoError(t, err)
	require.NoError(t, BindFlag(v, "server.port", flags.Lookup("port")))

	c, err := Parse(v)
	require.NoError(t, err)
	assert.Equal(t, "6060", c.Server.Port)
}

func TestBindMissingFlag(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	assert.Error(t, BindFlag(v, "server.port", nil))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  mode: turbo\n"))
		assert.ErrorContains(t, err, "server.mode")
	})

	t.Run("non positive body limit", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  max_body_bytes: 0\n"))
		assert.ErrorContains(t, err, "server.max_body_bytes")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [port\n"))
		assert.Error(t, err)
	})
}
