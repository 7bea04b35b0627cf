package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derandom.json")

	cfg := Config{
		InputMode:        "socket",
		GeneratorIndex:   5,
		HistoryCapacity:  200,
		PredictionLength: 3,
		AutoDetect:       false,
		ColorPast:        false,
		SocketAddr:       "127.0.0.1:9999",
	}

	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), got)
}

func TestLoadAcceptsJSONCComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derandom.jsonc")
	raw := `{
		// history capacity in samples
		"history_capacity": 500,
		"auto_detect": false,
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 500, got.HistoryCapacity)
	require.False(t, got.AutoDetect)
	require.Equal(t, Default().PredictionLength, got.PredictionLength)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derandom.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"history_capacity": `), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
