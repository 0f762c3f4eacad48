package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "Discover and print every spec case identity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				identities, err := c.components.App.ListModule(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, id := range identities {
					fmt.Fprintln(cmd.OutOrStdout(), id.String())
				}
				return nil
			}

			identities, failures := c.components.App.List(cmd.Context())

			for _, id := range identities {
				fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			for _, failure := range failures {
				c.components.Printer.Fail(failure.Error())
			}

			if len(failures) > 0 {
				return fmt.Errorf("%d spec modules failed discovery", len(failures))
			}
			return nil
		},
	}
}
