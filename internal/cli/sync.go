package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncCommand creates the "sync" command: the full scan-and-download pass.
func (c *CLI) syncCommand() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Scan the pool and download new or updated packages",
		Long: `Sync fetches the pool's directory listings, diffs the discovered release
tarballs against the local inventory, downloads and extracts anything new,
and persists the updated inventory. Packages that fail to process are
logged and retried on the next run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			runner := c.newRunner(cfg, !noProgress)
			report, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			if !report.HadUpdates() {
				printInfo("Everything is up to date")
				printDetail("%d package directories scanned", report.Directories)
				return nil
			}

			printSuccess("Processed %d new and %d updated packages", len(report.New), len(report.Updated))
			printDetail("output: %s/", cfg.OutputDir)
			if len(report.Failed) > 0 {
				printWarning("%d packages failed and will be retried next run", len(report.Failed))
				for _, name := range report.Failed {
					printDetail("failed: %s", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the download progress bar")
	return cmd
}
