package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
	"github.com/cleared-dev/ledgermap/internal/statement"
)

func newNotesCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Show the note numbers allocated to each variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}
			rep, err := ws.build()
			if err != nil {
				return err
			}

			tax := schedule.Default()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, v := range rep.Variants {
				fmt.Fprintf(tw, "[%s]\n", v.Variant)
				printRange(tw, "Balance Sheet", rep.Notes.Range(model.StatementBalanceSheet, v.Variant))
				if n, ok := rep.Notes.Contingent[v.Variant]; ok {
					fmt.Fprintf(tw, "  Contingent liabilities\tnote %d\n", n)
				}
				printRange(tw, "Profit and Loss", rep.Notes.Range(model.StatementProfitLoss, v.Variant))
				printNotes(tw, tax, rep.Notes, v.Variant, schedule.BalanceSheet, model.StatementBalanceSheet)
				printNotes(tw, tax, rep.Notes, v.Variant, schedule.ProfitLoss, model.StatementProfitLoss)
			}
			return tw.Flush()
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}

func printRange(w *tabwriter.Writer, label string, r schedule.Range) {
	if r.Empty() {
		fmt.Fprintf(w, "  %s\tno notes\n", label)
		return
	}
	fmt.Fprintf(w, "  %s\tnotes %d-%d\n", label, r.First, r.Last)
}

func printNotes(w *tabwriter.Writer, tax *schedule.Taxonomy, notes statement.ExportNotes, variant model.Variant, st schedule.Statements, statementKind model.Statement) {
	for e := range tax.Notes(st) {
		if n, ok := notes.Lookup(statementKind, variant, e.Code.String()); ok {
			fmt.Fprintf(w, "    %d\t%s\t%s\n", n, e.Code, e.Description)
		}
	}
}
