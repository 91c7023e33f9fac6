package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/config"
	"github.com/cleared-dev/ledgermap/internal/gitops"
	"github.com/cleared-dev/ledgermap/internal/ledger"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/report"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// workspace is an initialised ledgermap directory.
type workspace struct {
	root string
	cfg  *config.Config
	agg  model.AggregationConfig
}

func addRepoFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVar(dir, "repo", ".", "workspace directory")
}

func openWorkspace(dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	agg, err := cfg.ToAggregation()
	if err != nil {
		return nil, err
	}
	return &workspace{root: root, cfg: cfg, agg: agg}, nil
}

func (w *workspace) author() gitops.Author {
	return gitops.Author{Name: w.cfg.Git.AuthorName, Email: w.cfg.Git.AuthorEmail}
}

// rulesPath returns the configured rules file of a variant, or "" when the
// variant is not configured.
func (w *workspace) rulesPath(variant model.Variant) string {
	p := w.cfg.Rules.Primary
	if variant == model.VariantComparison {
		p = w.cfg.Rules.Comparison
	}
	if p == "" {
		return ""
	}
	return filepath.Join(w.root, p)
}

func (w *workspace) repository(variant model.Variant) (rules.Repository, error) {
	path := w.rulesPath(variant)
	if path == "" {
		return nil, fmt.Errorf("no %s rules configured", variant)
	}
	return rules.Open(w.cfg.Rules.Backend, path, schedule.Default())
}

func closeRepository(repo rules.Repository) {
	if c, ok := repo.(io.Closer); ok {
		_ = c.Close()
	}
}

// loadRules reads a variant's rule set. A missing comparison set is nil.
func (w *workspace) loadRules(variant model.Variant) (*rules.Store, error) {
	if variant == model.VariantComparison && w.cfg.Rules.Comparison == "" {
		return nil, nil
	}
	repo, err := w.repository(variant)
	if err != nil {
		return nil, err
	}
	defer closeRepository(repo)
	s, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("loading %s rules: %w", variant, err)
	}
	return s, nil
}

func (w *workspace) saveRules(variant model.Variant, s *rules.Store) error {
	repo, err := w.repository(variant)
	if err != nil {
		return err
	}
	defer closeRepository(repo)
	return repo.Save(s)
}

func (w *workspace) ledgers(period model.Period) ([]model.LedgerAccount, error) {
	set, err := ledger.Load(w.root, period)
	if err != nil {
		return nil, err
	}
	return set.All(), nil
}

// build runs the full pipeline over the workspace's ledgers.
func (w *workspace) build() (*report.Report, error) {
	in := report.Input{Config: w.agg}
	var err error
	if in.Current, err = w.ledgers(model.PeriodCurrent); err != nil {
		return nil, err
	}
	if in.Prior, err = w.ledgers(model.PeriodPrior); err != nil {
		return nil, err
	}
	if in.Primary, err = w.loadRules(model.VariantPrimary); err != nil {
		return nil, err
	}
	if in.Comparison, err = w.loadRules(model.VariantComparison); err != nil {
		return nil, err
	}
	return report.Build(in)
}

func parseVariant(s string) (model.Variant, error) {
	switch v := model.Variant(s); v {
	case model.VariantPrimary, model.VariantComparison:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q (want primary or comparison)", s)
}

func parsePeriod(s string) (model.Period, error) {
	switch p := model.Period(s); p {
	case model.PeriodCurrent, model.PeriodPrior:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (want current or prior)", s)
}
