package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/config"
	"github.com/cleared-dev/ledgermap/internal/gitops"
	"github.com/cleared-dev/ledgermap/internal/ledger"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string
	var sample bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgermap workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, name, entityType, sample)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledgermap workspace at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "company", "entity type")
	cmd.Flags().BoolVar(&sample, "sample", true, "seed the current period with a sample trial balance")

	return cmd
}

func runInit(dir, name, entityType string, sample bool) (string, error) {
	// Create directory structure.
	dirs := []string{
		ledger.Dir,
		"rules",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write ledgermap.yaml.
	cfg := config.Default(name, entityType)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write the stock rule set.
	repo, err := rules.Open(cfg.Rules.Backend, filepath.Join(dir, cfg.Rules.Primary), schedule.Default())
	if err != nil {
		return "", err
	}
	err = repo.Save(rules.Defaults())
	closeRepository(repo)
	if err != nil {
		return "", fmt.Errorf("writing rules: %w", err)
	}

	// Write the sample trial balance.
	if sample {
		set := ledger.NewSet()
		if _, err := set.Merge(ledger.SampleTrialBalance()); err != nil {
			return "", err
		}
		if err := set.Save(dir, model.PeriodCurrent); err != nil {
			return "", fmt.Errorf("writing sample ledgers: %w", err)
		}
	}

	// Write .gitignore.
	gitignore := "exports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
