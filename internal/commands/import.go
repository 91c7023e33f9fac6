package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/importer"
	"github.com/cleared-dev/ledgermap/internal/ledger"
	"github.com/cleared-dev/ledgermap/internal/runlog"
)

func newImportCommand() *cobra.Command {
	var repoDir, periodFlag string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trial balance files from import/ into a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(periodFlag)
			if err != nil {
				return err
			}
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			reg := importer.DefaultRegistry(importer.Options{DebitNegative: ws.cfg.Import.DebitNegative})
			files, err := reg.Scan(ws.root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No files to import.")
				return nil
			}

			set, err := ledger.Load(ws.root, period)
			if err != nil {
				return err
			}
			runID := runlog.NewRunID()
			var entries []runlog.Entry
			for _, f := range files {
				res, err := reg.Import(ws.root, f, set)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %d parsed, %d added, %d duplicates skipped\n", res.File, res.Parsed, res.Added, res.Duplicates)
				entries = append(entries, runlog.Entry{RunID: runID, Command: "import", Ledgers: res.Added})
			}
			if err := set.Save(ws.root, period); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s period now holds %d ledgers\n", period, set.Len())
			return runlog.Append(ws.root, entries)
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&periodFlag, "period", "current", "period to import into (current or prior)")
	return cmd
}
