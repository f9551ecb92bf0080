// Package inventory persists the record of processed package releases.
//
// The inventory is a single pretty-printed JSON document (versions.json)
// mapping version keys to the release that satisfied them, plus summary
// statistics derived from the output directory. The derived fields are a
// cache rebuilt wholesale on every save and must never feed back into
// update detection; the packages mapping is the only source of truth.
//
// The store owns all reads and writes of the document. It operates on an
// [afero.Fs] so the load→diff→process→save pipeline can be exercised
// against an in-memory filesystem.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Record describes one successfully processed release. Records are written
// once and never mutated; deleting one from the file forces reprocessing.
type Record struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Size         string `json:"size"`
	DownloadedAt string `json:"downloaded_at"`
}

// File is the persisted inventory document. Only Packages and LastChecked
// are authoritative; the remaining fields are derived statistics recomputed
// on every save. Older documents missing the derived fields load cleanly.
type File struct {
	Packages          map[string]Record `json:"packages"`
	LastChecked       string            `json:"last_checked"`
	TotalPackages     int               `json:"total_packages"`
	TotalImages       int               `json:"total_images"`
	TotalSizeMB       float64           `json:"total_size_mb"`
	LatestMintRelease string            `json:"latest_mint_release"`
	LatestMintVersion float64           `json:"latest_mint_version"`
}

// Store reads and writes the inventory document.
type Store struct {
	fs        afero.Fs
	path      string
	outputDir string
	logger    *log.Logger

	now func() time.Time // test hook
}

// NewStore creates a store persisting to path, deriving statistics from
// outputDir. A nil logger falls back to log.Default().
func NewStore(fsys afero.Fs, path, outputDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{fs: fsys, path: path, outputDir: outputDir, logger: logger, now: time.Now}
}

// Load reads the persisted document. A missing file is a first run, not an
// error: it returns a fresh empty document.
func (s *Store) Load() (*File, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return &File{Packages: map[string]Record{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode inventory %s: %w", s.path, err)
	}
	if f.Packages == nil {
		f.Packages = map[string]Record{}
	}
	return &f, nil
}

// Save stamps the current UTC time, recomputes every derived statistic from
// the output directory and overwrites the previous document. It is safe to
// call before the output directory exists.
//
// Save failure is the one fatal error of the pipeline: losing the updated
// mapping means the next run silently redoes all work.
func (s *Store) Save(f *File) error {
	f.LastChecked = s.now().UTC().Format(time.RFC3339)
	f.TotalPackages = len(f.Packages)

	stats := CollectStats(s.fs, s.outputDir)
	f.TotalImages = stats.Images
	f.TotalSizeMB = stats.SizeMB()
	f.LatestMintRelease = stats.LatestRelease
	f.LatestMintVersion = stats.LatestVersion

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	// Full-file overwrite via rename. Concurrent invocations of the whole
	// tool may still race with each other; single-process runs are the
	// supported mode.
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write inventory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}

	s.logger.Debug("saved inventory",
		"path", s.path,
		"packages", f.TotalPackages,
		"images", f.TotalImages)
	return nil
}
