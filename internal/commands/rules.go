package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/gitops"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/ruleid"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
	}
	rulesCmd.AddCommand(
		newRulesListCommand(),
		newRulesAddCommand(),
		newRulesToggleCommand("enable", true),
		newRulesToggleCommand("disable", false),
		newRulesCheckCommand(),
		newRulesExportCommand(),
	)
	return rulesCmd
}

// ruleFlags are shared by the rules subcommands that touch a rule set.
type ruleFlags struct {
	repo    string
	variant string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	addRepoFlag(cmd, &f.repo)
	cmd.Flags().StringVar(&f.variant, "variant", "primary", "rule set (primary or comparison)")
}

func (f *ruleFlags) open() (*workspace, model.Variant, *rules.Store, error) {
	variant, err := parseVariant(f.variant)
	if err != nil {
		return nil, "", nil, err
	}
	ws, err := openWorkspace(f.repo)
	if err != nil {
		return nil, "", nil, err
	}
	s, err := ws.loadRules(variant)
	if err != nil {
		return nil, "", nil, err
	}
	if s == nil {
		return nil, "", nil, fmt.Errorf("no %s rules configured", variant)
	}
	return ws, variant, s, nil
}

// saveAndCommit persists a changed rule set and, with git.auto_commit,
// commits the rules file.
func saveAndCommit(ws *workspace, variant model.Variant, s *rules.Store, msg string) error {
	if err := ws.saveRules(variant, s); err != nil {
		return err
	}
	if !ws.cfg.Git.AutoCommit || !gitops.IsRepo(ws.root) {
		return nil
	}
	rel, err := filepath.Rel(ws.root, ws.rulesPath(variant))
	if err != nil {
		return err
	}
	hash, err := gitops.CommitPaths(ws.root, msg, ws.author(), rel)
	if err != nil {
		return fmt.Errorf("committing rules: %w", err)
	}
	logrus.WithFields(logrus.Fields{"variant": variant, "commit": hash}).Info("committed rules")
	return nil
}

func newRulesListCommand() *cobra.Command {
	var f ruleFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classification and validation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, s, err := f.open()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTIER\tMATCH\tTARGET\tACTIVE")
			for _, r := range s.Rules() {
				match, err := describeRule(r)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", r.RuleID(), r.Tier(), match, r.Target(), r.IsActive())
			}
			for _, v := range s.Validations() {
				fmt.Fprintf(tw, "%s\tvalidation\t%s\t%s\t%t\n", v.ID, v.Type, v.Severity, v.Active)
			}
			return tw.Flush()
		},
	}
	f.register(cmd)
	return cmd
}

func describeRule(r model.Rule) (string, error) {
	switch v := r.(type) {
	case model.OverrideRule:
		if v.CurrentGroup != "" {
			return fmt.Sprintf("ledger %q in %q", v.LedgerName, v.CurrentGroup), nil
		}
		return fmt.Sprintf("ledger %q", v.LedgerName), nil
	case model.KeywordRule:
		return fmt.Sprintf("%s %q (priority %d)", v.MatchType, v.Pattern, v.Priority), nil
	case model.GroupRule:
		if v.ParentGroup != "" {
			return fmt.Sprintf("group %q under %q", v.GroupName, v.ParentGroup), nil
		}
		return fmt.Sprintf("group %q", v.GroupName), nil
	default:
		return "", fmt.Errorf("unsupported rule kind %T", r)
	}
}

func newRulesAddCommand() *cobra.Command {
	var f ruleFlags
	var code, group, parent, pattern, match, ledgerName, reason string
	var priority int

	cmd := &cobra.Command{
		Use:       "add <group|keyword|override>",
		Short:     "Add a classification rule",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"group", "keyword", "override"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, variant, s, err := f.open()
			if err != nil {
				return err
			}

			var r model.Rule
			switch args[0] {
			case "group":
				r = model.GroupRule{ID: s.NextID(ruleid.PrefixGroup), GroupName: group, ParentGroup: parent, TargetCode: code, Active: true}
			case "keyword":
				r = model.KeywordRule{ID: s.NextID(ruleid.PrefixKeyword), Pattern: pattern, MatchType: model.MatchType(match), Priority: priority, TargetCode: code, Active: true}
			case "override":
				r = model.OverrideRule{ID: s.NextID(ruleid.PrefixOverride), LedgerName: ledgerName, CurrentGroup: group, Reason: reason, TargetCode: code, Active: true}
			default:
				return fmt.Errorf("unknown rule kind %q (want group, keyword or override)", args[0])
			}
			if err := s.Add(r); err != nil {
				return err
			}
			if err := saveAndCommit(ws, variant, s, fmt.Sprintf("rules: add %s -> %s", r.RuleID(), r.Target())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s rule %s -> %s\n", r.Tier(), r.RuleID(), r.Target())
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&code, "code", "", "target Schedule III code")
	cmd.Flags().StringVar(&group, "group", "", "ledger group (group rules) or current group qualifier (override rules)")
	cmd.Flags().StringVar(&parent, "parent", "", "parent group qualifier")
	cmd.Flags().StringVar(&pattern, "pattern", "", "keyword pattern")
	cmd.Flags().StringVar(&match, "match", string(model.MatchContains), "keyword match type (contains, starts_with, ends_with)")
	cmd.Flags().IntVar(&priority, "priority", 50, "keyword priority, higher wins")
	cmd.Flags().StringVar(&ledgerName, "ledger", "", "exact ledger name (override rules)")
	cmd.Flags().StringVar(&reason, "reason", "", "why the override exists")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newRulesToggleCommand(verb string, active bool) *cobra.Command {
	var f ruleFlags

	cmd := &cobra.Command{
		Use:   verb + " <id>",
		Short: fmt.Sprintf("%s a rule without removing it", verb),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, variant, s, err := f.open()
			if err != nil {
				return err
			}
			if err := s.SetActive(args[0], active); err != nil {
				return err
			}
			if err := saveAndCommit(ws, variant, s, fmt.Sprintf("rules: %s %s", verb, args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule %s %sd\n", args[0], verb)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newRulesCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <code>",
		Short: "Check that a code can be assigned by a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := schedule.Default().Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Code, e.Description, e.Statements)
			return nil
		},
	}
}

func newRulesExportCommand() *cobra.Command {
	var f ruleFlags
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy a rule set into another backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, s, err := f.open()
			if err != nil {
				return err
			}
			repo, err := rules.Open(format, outPath, s.Taxonomy())
			if err != nil {
				return err
			}
			defer closeRepository(repo)
			if err := repo.Save(s); err != nil {
				return fmt.Errorf("exporting rules: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rules to %s\n", s.Len(), outPath)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&format, "format", rules.BackendSQLite, "target backend (yaml or sqlite)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "target file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
