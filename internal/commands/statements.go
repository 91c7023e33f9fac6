package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/export"
	"github.com/cleared-dev/ledgermap/internal/report"
	"github.com/cleared-dev/ledgermap/internal/runlog"
	"github.com/cleared-dev/ledgermap/internal/statement"
)

func newStatementsCommand() *cobra.Command {
	var repoDir, outPath string

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Build the Balance Sheet and Profit and Loss and export them to Excel",
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

			if outPath == "" {
				outPath = filepath.Join(ws.root, "exports", "statements.xlsx")
			}
			if err := exportReport(ws, rep, outPath); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, v := range rep.Variants {
				printStatements(out, v.Statements)
			}
			fmt.Fprintf(out, "Wrote %s\n", outPath)

			return runlog.Append(ws.root, rep.LogEntries("statements"))
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output workbook (default exports/statements.xlsx)")
	return cmd
}

func exportReport(ws *workspace, rep *report.Report, path string) error {
	ex, err := export.New(export.Header{
		Company:      ws.cfg.Business.Name,
		CurrentLabel: ws.cfg.Periods.Current,
		PriorLabel:   ws.cfg.Periods.Prior,
	})
	if err != nil {
		return err
	}
	defer ex.Close()

	for _, v := range rep.Variants {
		if err := ex.AddStatements(v.Statements); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return ex.SaveAs(path)
}

func printStatements(w io.Writer, s *statement.Statements) {
	pl, bs := s.ProfitLoss, s.BalanceSheet
	fmt.Fprintf(w, "[%s]\n", s.Variant)
	fmt.Fprintf(w, "  Revenue            %s / %s\n", pl.Revenue.Current.StringFixed(2), pl.Revenue.Prior.StringFixed(2))
	fmt.Fprintf(w, "  Expenses           %s / %s\n", pl.Expenses.Current.StringFixed(2), pl.Expenses.Prior.StringFixed(2))
	fmt.Fprintf(w, "  Net profit         %s / %s\n", pl.NetProfit.Current.StringFixed(2), pl.NetProfit.Prior.StringFixed(2))
	fmt.Fprintf(w, "  Equity+liabilities %s / %s\n", bs.Liabilities.Current.StringFixed(2), bs.Liabilities.Prior.StringFixed(2))
	fmt.Fprintf(w, "  Assets             %s / %s\n", bs.Assets.Current.StringFixed(2), bs.Assets.Prior.StringFixed(2))
	if bs.HasDifference {
		fmt.Fprintf(w, "  DIFFERENCE         %s / %s\n", bs.Imbalance.Current.StringFixed(2), bs.Imbalance.Prior.StringFixed(2))
	} else {
		fmt.Fprintln(w, "  Balance sheet balances.")
	}
	if len(s.Unplaced) > 0 {
		fmt.Fprintf(w, "  Unplaced codes: %v\n", s.Unplaced)
	}
}
