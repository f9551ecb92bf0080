// Package cli implements the mintbg command-line interface.
//
// The main commands are:
//   - sync: scan the pool and download/extract new or updated packages
//   - check: read-only poll reporting whether updates are available
//   - status: print the persisted inventory summary without touching the
//     network
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML settings file.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/392781/mint-backgrounds/internal/config"
	"github.com/392781/mint-backgrounds/pkg/archive"
	"github.com/392781/mint-backgrounds/pkg/buildinfo"
	"github.com/392781/mint-backgrounds/pkg/inventory"
	"github.com/392781/mint-backgrounds/pkg/pipeline"
	"github.com/392781/mint-backgrounds/pkg/pool"
)

// appName is the application name used for display.
const appName = "mintbg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrNoUpdates is returned by the check command when the pool holds nothing
// new. main maps it to a distinct exit code so schedulers can branch on it.
var ErrNoUpdates = errors.New("no updates available")

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "mintbg keeps a local mirror of Linux Mint wallpaper packages",
		Long:         `mintbg scrapes the Linux Mint package pool for mint-backgrounds release tarballs, downloads the ones it has not seen yet and extracts their wallpapers into a per-release directory tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.syncCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.statusCommand())

	return root
}

// loadConfig reads the configured settings file, or the defaults when none
// was given.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner wires the full pipeline from a config: pool client, inventory
// store on the real filesystem, and archive processor.
func (c *CLI) newRunner(cfg config.Config, progress bool) *pipeline.Runner {
	client := pool.NewClient(cfg.BaseURL, cfg.PoolOptions(), c.Logger)
	store := inventory.NewStore(afero.NewOsFs(), cfg.InventoryFile, cfg.OutputDir, c.Logger)
	proc := archive.NewProcessor(client, c.Logger, archive.WithProgress(progress))

	return pipeline.NewRunner(client, store, proc, pipeline.Config{
		OutputDir:    cfg.OutputDir,
		MinSizeBytes: cfg.MinSizeBytes(),
	}, c.Logger)
}
