package inventory

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"wallpaper.jpg", true},
		{"wallpaper.JPG", true},
		{"photo.jpeg", true},
		{"art.png", true},
		{"vector.svg", true},
		{"Credits_nadia", false},
		{"readme.txt", false},
		{"archive.tar.gz", false},
		{"jpg", false}, // no extension
	}

	for _, tt := range tests {
		if got := IsImage(tt.name); got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCollectStatsMissingDir(t *testing.T) {
	stats := CollectStats(afero.NewMemMapFs(), "does-not-exist")
	assert.Zero(t, stats.Images)
	assert.Zero(t, stats.SizeBytes)
	assert.Empty(t, stats.LatestRelease)
}

func TestCollectStatsCountsImagesOneLevelDeep(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/nadia/a.jpg", make([]byte, 100), 0o644))
	require.NoError(t, afero.WriteFile(fs, "out/nadia/b.png", make([]byte, 200), 0o644))
	require.NoError(t, afero.WriteFile(fs, "out/nadia/Credits_nadia", make([]byte, 10), 0o644))
	// Top-level files and nested subdirectories are not counted
	require.NoError(t, afero.WriteFile(fs, "out/stray.jpg", make([]byte, 400), 0o644))
	require.NoError(t, afero.WriteFile(fs, "out/nadia/nested/c.jpg", make([]byte, 800), 0o644))

	stats := CollectStats(fs, "out")
	assert.Equal(t, 2, stats.Images)
	assert.Equal(t, int64(300), stats.SizeBytes)
}

func TestCollectStatsFindsLatestRelease(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"out/nadia", "out/rebecca", "out/sarah", "out/xfce"} {
		require.NoError(t, fs.MkdirAll(dir, 0o755))
	}

	stats := CollectStats(fs, "out")
	assert.Equal(t, "Sarah", stats.LatestRelease)
	assert.Equal(t, float64(18), stats.LatestVersion)
}

func TestCollectStatsPointReleaseOrdinals(t *testing.T) {
	fs := afero.NewMemMapFs()
	// rafaela (17.1) outranks qiana (17)
	require.NoError(t, fs.MkdirAll("out/qiana", 0o755))
	require.NoError(t, fs.MkdirAll("out/rafaela", 0o755))

	stats := CollectStats(fs, "out")
	assert.Equal(t, "Rafaela", stats.LatestRelease)
	assert.Equal(t, 17.1, stats.LatestVersion)
}

func TestStatsSizeMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  float64
	}{
		{0, 0},
		{17301504, 16.5},
		{1024 * 1024, 1},
		{1536 * 1024, 1.5},
		{100, 0}, // rounds to one decimal
	}

	for _, tt := range tests {
		if got := (Stats{SizeBytes: tt.bytes}).SizeMB(); got != tt.want {
			t.Errorf("Stats{SizeBytes: %d}.SizeMB() = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"nadia", "Nadia"},
		{"SARAH", "Sarah"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
