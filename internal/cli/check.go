package cli

import (
	"github.com/spf13/cobra"
)

// checkCommand creates the "check" command: discovery only, no downloads,
// no writes. Exit codes follow the grep convention so schedulers can poll
// cheaply before committing to a full sync: 0 when updates are available,
// 1 when everything is current, 2 on errors.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether updates are available, without downloading",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			updates, err := c.newRunner(cfg, false).HasUpdates(cmd.Context())
			if err != nil {
				return err
			}
			if !updates {
				printInfo("No updates")
				return ErrNoUpdates
			}
			printSuccess("Updates available")
			return nil
		},
	}
}
