package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the compiled artifact cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print cache entry count and total size",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			stats := c.components.App.CacheStats()
			fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\nsize: %d bytes\n", stats.Entries, stats.TotalSize)
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Evict every cached artifact",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			count := c.components.App.CacheClear()
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d entries\n", count)
		},
	})

	return cacheCmd
}
