package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.drnd")
	vec := []uint64{2, 10, 20, 30, 1, 2, 3, 4, 5}

	require.NoError(t, Save(path, vec))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, vec, got)
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.drnd")
	require.NoError(t, Save(path, []uint64{0, 1, 2, 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0o600))

	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBitFlip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.drnd")
	require.NoError(t, Save(path, []uint64{0, 1, 2, 3}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Load(path)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.drnd")
	require.NoError(t, os.WriteFile(path, []byte("XXXXnonsense-body-that-is-long-enough"), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidMagic)
}
