package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Nuclei", "Nuclei"},
		{"Cells 2", "Cells_2"},
		{"../etc/passwd", "etc_passwd"},
		{"a//b", "a_b"},
		{"", "unknown"},
		{"...", "unknown"},
		{"Zellkerne-ä", "Zellkerne-"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, SanitizeFilename(string(long)), maxFilenameLen)
}

func TestJoinWithin(t *testing.T) {
	tmp := t.TempDir()
	safe := filepath.Join(tmp, "safe")
	outside := filepath.Join(tmp, "outside")
	require.NoError(t, os.MkdirAll(safe, 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))
	require.NoError(t, os.Symlink(outside, filepath.Join(safe, "evil-symlink")))

	got, err := JoinWithin(safe, "Nuclei_centroids.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(safe, "Nuclei_centroids.png"), got)

	_, err = JoinWithin(safe, filepath.Join("sub", "new.png"))
	assert.NoError(t, err)

	_, err = JoinWithin(safe, "../escape.png")
	assert.ErrorIs(t, err, ErrPathEscape)

	_, err = JoinWithin(safe, filepath.Join("evil-symlink", "x.png"))
	assert.ErrorIs(t, err, ErrPathEscape)
}
