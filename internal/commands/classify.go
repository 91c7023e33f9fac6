package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/classify"
	"github.com/cleared-dev/ledgermap/internal/model"
)

func newClassifyCommand() *cobra.Command {
	var repoDir, periodFlag, variantFlag string
	var unmappedOnly bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show the Schedule III code assigned to every ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := parsePeriod(periodFlag)
			if err != nil {
				return err
			}
			variant, err := parseVariant(variantFlag)
			if err != nil {
				return err
			}
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}
			store, err := ws.loadRules(variant)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("no %s rules configured", variant)
			}
			ledgers, err := ws.ledgers(period)
			if err != nil {
				return err
			}
			nm, err := store.Taxonomy().BuildNoteNumberMap(ws.agg.StartNoteNumber, ws.agg.IncludeContingentLiabilities)
			if err != nil {
				return err
			}
			batch := classify.New(store, classify.WithNotes(nm)).Run(ledgers)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEDGER\tGROUP\tCODE\tTIER\tRULE\tNOTE\tFLAGS")
			for _, res := range batch.Results {
				if unmappedOnly && res.Mapped() {
					continue
				}
				note := ""
				if res.NoteNumber > 0 {
					note = fmt.Sprint(res.NoteNumber)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					res.Ledger.Name, res.Ledger.Group, res.Code, res.Tier, res.RuleID, note, strings.Join(res.Flags, ","))
				if !res.Mapped() {
					for _, s := range classify.Suggest(res.Ledger, store, 3) {
						fmt.Fprintf(tw, "  did you mean %q?\t\t%s\t\t%s\t\t%.0f%% similar\n", s.Matched, s.Code, s.RuleID, s.Similarity*100)
					}
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			st := classify.Summarize(batch.Results)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d ledgers: %d mapped, %d unmapped (%s)\n", st.Total, st.Mapped, st.Unmapped, tierSummary(st))
			for _, f := range batch.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", f)
			}
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&periodFlag, "period", "current", "period to classify (current or prior)")
	cmd.Flags().StringVar(&variantFlag, "variant", "primary", "rule set to use (primary or comparison)")
	cmd.Flags().BoolVar(&unmappedOnly, "unmapped", false, "only list unmapped ledgers")
	return cmd
}

func tierSummary(st classify.Stats) string {
	var parts []string
	for _, t := range []model.Tier{model.TierOverride, model.TierKeyword, model.TierGroup} {
		parts = append(parts, fmt.Sprintf("%s %d", t, st.ByTier[t]))
	}
	return strings.Join(parts, ", ")
}
