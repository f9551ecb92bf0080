package inventory

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// imageExtensions is the fixed set of asset types counted as wallpapers.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".svg":  true,
}

// mintReleases maps Linux Mint release code names to their numeric version
// ordinals, used to rank which release is the newest one present on disk.
var mintReleases = map[string]float64{
	"katya": 11, "lisa": 12, "maya": 13, "nadia": 14, "olivia": 15,
	"petra": 16, "qiana": 17, "rafaela": 17.1, "rebecca": 17.2,
	"rosa": 17.3, "sarah": 18, "serena": 18.1, "sonya": 18.2,
	"sylvia": 18.3, "tara": 19, "tessa": 19.1, "tina": 19.2,
	"tricia": 19.3, "ulyana": 20, "ulyssa": 20.1, "uma": 20.2,
	"una": 20.3, "vanessa": 21, "vera": 21.1, "victoria": 21.2,
	"virginia": 21.3, "wilma": 22,
}

// IsImage reports whether the filename has one of the wallpaper image
// extensions. The check is case-insensitive.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Stats summarizes the current contents of the output directory tree.
type Stats struct {
	Images        int
	SizeBytes     int64
	LatestRelease string
	LatestVersion float64
}

// SizeMB returns the total image size in megabytes, rounded to one decimal.
func (s Stats) SizeMB() float64 {
	return math.Round(float64(s.SizeBytes)/(1024*1024)*10) / 10
}

// CollectStats scans the output directory and derives summary statistics:
// the number and total size of image files (one level deep, directly inside
// each package directory) and the highest-ordinal Mint release present
// among the top-level subdirectory names.
//
// It is a pure function of the directory's current contents. A missing
// directory yields zero stats.
func CollectStats(fsys afero.Fs, dir string) Stats {
	var stats Stats

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return stats
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if v, ok := mintReleases[name]; ok && v > stats.LatestVersion {
			stats.LatestVersion = v
			stats.LatestRelease = capitalize(entry.Name())
		}

		files, err := afero.ReadDir(fsys, filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			if !f.IsDir() && IsImage(f.Name()) {
				stats.Images++
				stats.SizeBytes += f.Size()
			}
		}
	}
	return stats
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
