package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/392781/mint-backgrounds/pkg/inventory"
)

// statusCommand creates the "status" command: print the persisted inventory
// summary as of the last run. Reads only the local document, never the
// network.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local inventory summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			store := inventory.NewStore(afero.NewOsFs(), cfg.InventoryFile, cfg.OutputDir, c.Logger)
			inv, err := store.Load()
			if err != nil {
				return err
			}

			if len(inv.Packages) == 0 {
				printInfo("No packages processed yet")
				printDetail("inventory: %s", cfg.InventoryFile)
				return nil
			}

			printKeyValue("packages", fmt.Sprintf("%d", inv.TotalPackages))
			printKeyValue("images", fmt.Sprintf("%d", inv.TotalImages))
			printKeyValue("total size", fmt.Sprintf("%.1f MB", inv.TotalSizeMB))
			if inv.LatestMintRelease != "" {
				printKeyValue("latest release", fmt.Sprintf("%s (%g)", inv.LatestMintRelease, inv.LatestMintVersion))
			}
			if inv.LastChecked != "" {
				printKeyValue("last checked", inv.LastChecked)
			}
			return nil
		},
	}
}
