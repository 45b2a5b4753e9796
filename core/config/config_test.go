package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluidauth/fluidauth/core/config"
)

// Environment mutation prevents t.Parallel in these tests.

type sessionConfig struct {
	Secret   string `env:"TEST_SESSION_SECRET,required"`
	Duration int    `env:"TEST_SESSION_DURATION" envDefault:"1800"`
}

type redisConfig struct {
	URL string `env:"TEST_REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_SESSION_SECRET", "super-secret")

	var cfg sessionConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "super-secret", cfg.Secret)
	assert.Equal(t, 1800, cfg.Duration)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("TEST_SESSION_SECRET", "first")

	var first sessionConfig
	require.NoError(t, config.Load(&first))

	// A changed environment is not observed once the type is cached.
	t.Setenv("TEST_SESSION_SECRET", "second")

	var second sessionConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first, second)
}

func TestLoad_IndependentTypes(t *testing.T) {
	t.Setenv("TEST_SESSION_SECRET", "whatever")

	var s sessionConfig
	require.NoError(t, config.Load(&s))

	var r redisConfig
	require.NoError(t, config.Load(&r))
	assert.Equal(t, "redis://localhost:6379/0", r.URL)
}

func TestLoad_RejectsNonStructPointer(t *testing.T) {
	require.ErrorIs(t, config.Load(nil), config.ErrNotStructPointer)
	require.ErrorIs(t, config.Load(42), config.ErrNotStructPointer)

	var cfg sessionConfig
	require.ErrorIs(t, config.Load(cfg), config.ErrNotStructPointer)
}

func TestMustLoad_PanicsOnMissingRequired(t *testing.T) {
	type strictConfig struct {
		Token string `env:"TEST_ABSENT_TOKEN,required"`
	}

	assert.Panics(t, func() {
		config.MustLoad(&strictConfig{})
	})
}
