package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/docchat/internal/config"
)

func TestSetup_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	closer, err := Setup(config.LoggingConfig{Level: "warn"}, "production")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	closer, err := Setup(config.LoggingConfig{Level: "chatty"}, "production")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_RotatingFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	path := filepath.Join(t.TempDir(), "logs", "docchat.log")
	closer, err := Setup(config.LoggingConfig{Level: "info", File: path}, "production")
	require.NoError(t, err)

	log.Info().Msg("hello from the test")
	require.NoError(t, closer.Close())

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}
