package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	assert.NilError(t, err)
	assert.DeepEqual(t, cfg, defaults())
	assert.NilError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "kura.toml", `
[run]
rounds = 2
entities = 10
strict_invariants = true

[profile]
mode = "cpu"

[logging]
format = "json"
`)
	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Run.Rounds, 2)
	assert.Equal(t, cfg.Run.Entities, 10)
	assert.Equal(t, cfg.Run.Iterations, 10000) // default kept
	assert.Equal(t, cfg.Run.StrictInvariants, true)
	assert.Equal(t, cfg.Profile.Mode, "cpu")
	assert.Equal(t, cfg.Profile.Path, ".")
	assert.Equal(t, cfg.Logging.Format, "json")
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "kura.yaml", `
run:
  iterations: 3
  partition_capacity: 64
profile:
  mode: none
logging:
  level: debug
`)
	cfg, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Run.Iterations, 3)
	assert.Equal(t, cfg.Run.PartitionCapacity, 64)
	assert.Equal(t, cfg.Profile.Mode, "none")
	assert.Equal(t, cfg.Logging.Level, "debug")
	assert.Equal(t, cfg.Logging.Format, "console")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "kura.ini", "x=1"))
		assert.ErrorContains(t, err, "unsupported extension")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(writeFile(t, "kura.toml", "[run"))
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeFile(t, "kura.yaml", "run:\n  rounds: 0\n"))
		assert.ErrorContains(t, err, "must be positive")

		_, err = Load(writeFile(t, "kura.yaml", "profile:\n  mode: gpu\n"))
		assert.ErrorContains(t, err, "unknown mode")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)
	assert.Equal(t, logger.GetLevel(), zerolog.WarnLevel)

	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")
	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "dropped"))
	assert.Assert(t, strings.Contains(out, `"message":"kept"`))

	fallback := NewLogger(LoggingConfig{Level: "loud", Format: "console"}, &buf)
	assert.Equal(t, fallback.GetLevel(), zerolog.InfoLevel)
}
