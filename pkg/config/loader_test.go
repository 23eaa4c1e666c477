package config_test

import (
	"testing"
	"time"

	"github.com/limitkit/limitkit/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limiterEnv struct {
	Window time.Duration `env:"TEST_RL_WINDOW" envDefault:"60s"`
	Max    int           `env:"TEST_RL_MAX" envDefault:"100"`
	Mode   string        `env:"TEST_RL_MODE" envDefault:"ip"`
}

type requiredEnv struct {
	URL string `env:"TEST_RL_REQUIRED_URL,required"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg limiterEnv
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 100, cfg.Max)
	assert.Equal(t, "ip", cfg.Mode)
}

func TestLoad_FromEnvironment(t *testing.T) {
	type overriddenEnv struct {
		Window time.Duration `env:"TEST_RL_OVERRIDE_WINDOW" envDefault:"60s"`
	}

	t.Setenv("TEST_RL_OVERRIDE_WINDOW", "90s")

	var cfg overriddenEnv
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 90*time.Second, cfg.Window)
}

func TestLoad_CachesPerType(t *testing.T) {
	type cachedEnv struct {
		Max int `env:"TEST_RL_CACHED_MAX" envDefault:"5"`
	}

	var first cachedEnv
	require.NoError(t, config.Load(&first))
	require.Equal(t, 5, first.Max)

	// Later environment changes are not observed for an already-loaded type.
	t.Setenv("TEST_RL_CACHED_MAX", "50")

	var second cachedEnv
	require.NoError(t, config.Load(&second))
	assert.Equal(t, 5, second.Max)
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg requiredEnv
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	err := config.Load[limiterEnv](nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
