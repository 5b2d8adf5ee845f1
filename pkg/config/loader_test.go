package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/config"
)

type limitsConfig struct {
	MaxFiles int    `env:"TEST_FORMKIT_MAX_FILES" envDefault:"4"`
	TempDir  string `env:"TEST_FORMKIT_TEMP_DIR"`
}

type requiredConfig struct {
	Secret string `env:"TEST_FORMKIT_REQUIRED_SECRET,required"`
}

type invalidConfig struct {
	Count int `env:"TEST_FORMKIT_INVALID_COUNT"`
}

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Setenv("TEST_FORMKIT_TEMP_DIR", "/tmp/uploads")

	var cfg limitsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 4, cfg.MaxFiles)
	assert.Equal(t, "/tmp/uploads", cfg.TempDir)

	// Cached until reset.
	t.Setenv("TEST_FORMKIT_TEMP_DIR", "/var/uploads")
	var again limitsConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "/tmp/uploads", again.TempDir)

	config.ResetCache()
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "/var/uploads", again.TempDir)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	assert.ErrorIs(t, config.Load[limitsConfig](nil), config.ErrNilPointer)

	var req requiredConfig
	assert.ErrorIs(t, config.Load(&req), config.ErrParsingConfig)

	t.Setenv("TEST_FORMKIT_INVALID_COUNT", "many")
	var inv invalidConfig
	assert.ErrorIs(t, config.Load(&inv), config.ErrParsingConfig)

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}

func TestLoad_BinderConfig(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	t.Setenv("FORM_MAX_FILES", "3")
	t.Setenv("FORM_TEMP_DIR", "/srv/tmp")

	var cfg binder.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 3, cfg.MaxFiles)
	assert.Equal(t, "/srv/tmp", cfg.TempDir)
	assert.EqualValues(t, binder.DefaultMaxMemory, cfg.MaxMemory)
	assert.EqualValues(t, binder.DefaultMaxJSONSize, cfg.MaxJSONSize)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FORMKIT_FROM_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TEST_FORMKIT_FROM_FILE") })

	require.NoError(t, config.LoadEnv(path))
	assert.Equal(t, "loaded", os.Getenv("TEST_FORMKIT_FROM_FILE"))

	err := config.LoadEnv(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
