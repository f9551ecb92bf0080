// Package pipeline drives the end-to-end update scan: enumerate package
// directories, diff discovered tarballs against the inventory, process the
// new and updated ones and persist the result.
//
// The pipeline is strictly sequential — one logical worker, cooperative
// rate limiting inside the fetcher, no parallel downloads. The inventory
// document is threaded through load→diff→process→save as an explicit value;
// collaborators are injected as interfaces so the whole flow runs against
// an in-memory store and a test HTTP server.
//
// Concurrent invocations of the whole tool (two overlapping scheduler runs)
// are out of scope: the final inventory save is a full-file overwrite and
// the last writer wins.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/392781/mint-backgrounds/pkg/inventory"
	"github.com/392781/mint-backgrounds/pkg/pool"
)

// Fetcher enumerates the remote pool. Satisfied by [pool.Client]. Failed
// fetches surface as empty results, never as errors.
type Fetcher interface {
	Directories(ctx context.Context) []string
	Tarballs(ctx context.Context, dir string) []pool.Tarball
}

// Store owns the persisted inventory document. Satisfied by
// [inventory.Store].
type Store interface {
	Load() (*inventory.File, error)
	Save(*inventory.File) error
}

// Processor downloads and extracts one tarball. Satisfied by
// [archive.Processor].
type Processor interface {
	Process(ctx context.Context, tb pool.Tarball, outputBase string) error
}

// Config holds the pipeline tunables.
type Config struct {
	OutputDir    string // destination tree for extracted assets
	MinSizeBytes int64  // tarballs below this are placeholder packages and skipped
}

// Runner executes update scans.
type Runner struct {
	fetcher Fetcher
	store   Store
	proc    Processor
	cfg     Config
	logger  *log.Logger

	now func() time.Time // test hook
}

// NewRunner wires a runner from its collaborators.
// A nil logger falls back to log.Default().
func NewRunner(f Fetcher, s Store, p Processor, cfg Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{fetcher: f, store: s, proc: p, cfg: cfg, logger: logger, now: time.Now}
}

// Report summarizes one completed run.
type Report struct {
	Directories int      // package directories scanned
	New         []string // tarballs queued for packages not seen before
	Updated     []string // tarballs queued for new versions of known packages
	Failed      []string // queued tarballs whose processing failed; retried next run
}

// HadUpdates reports whether anything was queued for processing.
func (r *Report) HadUpdates() bool {
	return len(r.New)+len(r.Updated) > 0
}

// Run performs a full scan-and-download pass. Per-package processing
// failures are logged and recorded in the report but never abort the run;
// the only error Run returns after discovery is an inventory load or save
// failure, which is fatal because progress would otherwise be silently
// lost.
//
// The inventory is saved exactly once, after all queued items are
// processed, and on every run — even a no-op run refreshes last_checked and
// the derived statistics.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := r.logger.With("run", shortID())

	inv, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	report := &Report{}
	newItems, updatedItems := r.discover(ctx, logger, inv.Packages, report)

	if len(newItems)+len(updatedItems) == 0 {
		logger.Info("no new packages found")
		return report, r.store.Save(inv)
	}

	logger.Info("processing packages", "new", len(newItems), "updated", len(updatedItems))

	// New packages first, then updates, in discovery order.
	for _, item := range [][]pool.Tarball{newItems, updatedItems} {
		for _, tb := range item {
			if err := r.proc.Process(ctx, tb, r.cfg.OutputDir); err != nil {
				logger.Error("processing failed", "name", tb.Name, "err", err)
				report.Failed = append(report.Failed, tb.Name)
				continue
			}
			name, version := pool.ExtractVersionInfo(tb.Name)
			inv.Packages[pool.VersionKey(name, version)] = inventory.Record{
				Name:         tb.Name,
				Version:      version,
				Size:         tb.SizeStr,
				DownloadedAt: r.now().UTC().Format(time.RFC3339),
			}
		}
	}

	return report, r.store.Save(inv)
}

// HasUpdates performs the discovery steps only: no downloads, no writes.
// It returns true as soon as any unprocessed tarball above the size
// threshold is found. Intended for cheap scheduled polling before
// committing to a full run.
func (r *Runner) HasUpdates(ctx context.Context) (bool, error) {
	inv, err := r.store.Load()
	if err != nil {
		return false, err
	}

	for _, dir := range r.fetcher.Directories(ctx) {
		for _, tb := range r.fetcher.Tarballs(ctx, dir) {
			if tb.SizeBytes < r.cfg.MinSizeBytes {
				continue
			}
			name, version := pool.ExtractVersionInfo(tb.Name)
			if _, ok := inv.Packages[pool.VersionKey(name, version)]; !ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// discover walks the remote listings and partitions unprocessed tarballs
// into new packages and updated versions of known packages. Classification
// checks the raw package name against the names already in the inventory;
// a tarball below the size threshold is never queued regardless of its
// version novelty.
func (r *Runner) discover(ctx context.Context, logger *log.Logger, existing map[string]inventory.Record, report *Report) (newItems, updatedItems []pool.Tarball) {
	knownNames := make(map[string]bool, len(existing))
	for key := range existing {
		knownNames[pool.KeyPackageName(key)] = true
	}

	dirs := r.fetcher.Directories(ctx)
	report.Directories = len(dirs)
	logger.Info("scanning package directories", "count", len(dirs))

	for _, dir := range dirs {
		for _, tb := range r.fetcher.Tarballs(ctx, dir) {
			if tb.SizeBytes < r.cfg.MinSizeBytes {
				continue
			}
			name, version := pool.ExtractVersionInfo(tb.Name)
			if _, ok := existing[pool.VersionKey(name, version)]; ok {
				continue
			}
			if knownNames[name] {
				logger.Info("queued update", "name", tb.Name, "size", tb.SizeStr)
				updatedItems = append(updatedItems, tb)
				report.Updated = append(report.Updated, tb.Name)
			} else {
				logger.Info("queued new package", "name", tb.Name, "size", tb.SizeStr)
				newItems = append(newItems, tb)
				report.New = append(report.New, tb.Name)
			}
		}
	}
	return newItems, updatedItems
}

// shortID returns a compact run identifier for log correlation.
func shortID() string {
	return uuid.NewString()[:8]
}
