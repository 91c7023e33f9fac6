package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/runlog"
)

func newLogCommand() *cobra.Command {
	var repoDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			entries, err := runlog.Read(root)
			if err != nil {
				return err
			}
			runs := runlog.Runs(entries)
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tRUN\tCOMMAND\tVARIANT\tLEDGERS\tMAPPED\tUNMAPPED\tISSUES\tDIFFERENCE")
			for _, run := range runs {
				for _, e := range run {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%t\n",
						e.Timestamp.Local().Format(time.DateTime), e.RunID[:8], e.Command, e.Variant,
						e.Ledgers, e.Mapped, e.Unmapped, e.Issues, e.HasDifference)
				}
			}
			return tw.Flush()
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show (0 for all)")
	return cmd
}
