package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/statement"
)

func newPlacementCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "placement <category>",
		Short: "Report which statement a category appears on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.Join(args, " ")
			p := statement.DefaultPlacer().Placement(category)
			if p == "" {
				return fmt.Errorf("%q is not a line on either statement", category)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
