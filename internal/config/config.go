package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
)

// FileName is the workspace configuration file.
const FileName = "ledgermap.yaml"

// EnvPrefix prefixes environment overrides. Keys follow the struct path, e.g.
// LEDGERMAP_AGGREGATION_START_NOTE.
const EnvPrefix = "ledgermap"

// Config represents the top-level ledgermap.yaml configuration.
type Config struct {
	Business    BusinessConfig    `yaml:"business"`
	Periods     PeriodsConfig     `yaml:"periods"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Rules       RulesConfig       `yaml:"rules"`
	Import      ImportConfig      `yaml:"import"`
	Server      ServerConfig      `yaml:"server"`
	Git         GitConfig         `yaml:"git"`
}

// BusinessConfig identifies the reporting entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type" split_words:"true"`
}

// PeriodsConfig labels the two reporting periods in exports.
type PeriodsConfig struct {
	Current string `yaml:"current"`
	Prior   string `yaml:"prior"`
}

// AggregationConfig controls note numbering and the balance check.
type AggregationConfig struct {
	StartNote          int    `yaml:"start_note" split_words:"true"`
	IncludeContingent  bool   `yaml:"include_contingent_liabilities" split_words:"true"`
	SkipEmptyNotes     bool   `yaml:"skip_empty_notes" split_words:"true"`
	ImbalanceTolerance string `yaml:"imbalance_tolerance" split_words:"true"` // decimal, e.g. "0.01"
}

// RulesConfig locates the rule sets of both mapping variants.
type RulesConfig struct {
	Backend    string `yaml:"backend"`              // yaml or sqlite
	Primary    string `yaml:"primary"`              // relative to the workspace
	Comparison string `yaml:"comparison,omitempty"` // optional
}

// ImportConfig tunes trial-balance import.
type ImportConfig struct {
	DebitNegative bool `yaml:"debit_negative" split_words:"true"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" split_words:"true"`
	AuthorName  string `yaml:"author_name" split_words:"true"`
	AuthorEmail string `yaml:"author_email" split_words:"true"`
}

// Load reads a ledgermap.yaml file from disk over the defaults and applies
// environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	// Keys missing from the file keep their Default values.
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LEDGERMAP_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName, entityType string) *Config {
	agg := model.DefaultAggregationConfig()
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Periods: PeriodsConfig{
			Current: "Current year",
			Prior:   "Previous year",
		},
		Aggregation: AggregationConfig{
			StartNote:          agg.StartNoteNumber,
			IncludeContingent:  agg.IncludeContingentLiabilities,
			SkipEmptyNotes:     agg.SkipEmptyNotes,
			ImbalanceTolerance: agg.ImbalanceTolerance.String(),
		},
		Rules: RulesConfig{
			Backend: rules.BackendYAML,
			Primary: "rules/primary.yaml",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ledgermap",
			AuthorEmail: "ledgermap@localhost",
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Business),
		validation.Field(&c.Aggregation),
		validation.Field(&c.Rules),
	)
}

// Validate checks the business section.
func (b BusinessConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Name, validation.Required),
	)
}

// Validate checks the aggregation section.
func (a AggregationConfig) Validate() error {
	_, err := a.toModel()
	return err
}

// Validate checks the rules section.
func (r RulesConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Backend, validation.In(rules.BackendYAML, rules.BackendSQLite)),
		validation.Field(&r.Primary, validation.Required),
	)
}

// ToAggregation converts the aggregation section for the engine.
func (c *Config) ToAggregation() (model.AggregationConfig, error) {
	return c.Aggregation.toModel()
}

func (a AggregationConfig) toModel() (model.AggregationConfig, error) {
	tol := model.DefaultAggregationConfig().ImbalanceTolerance
	if a.ImbalanceTolerance != "" {
		var err error
		tol, err = decimal.NewFromString(a.ImbalanceTolerance)
		if err != nil {
			return model.AggregationConfig{}, validation.Errors{"imbalance_tolerance": fmt.Errorf("not a number: %q", a.ImbalanceTolerance)}
		}
	}
	out := model.AggregationConfig{
		StartNoteNumber:              a.StartNote,
		IncludeContingentLiabilities: a.IncludeContingent,
		SkipEmptyNotes:               a.SkipEmptyNotes,
		ImbalanceTolerance:           tol,
	}
	if err := out.Validate(); err != nil {
		return model.AggregationConfig{}, err
	}
	return out, nil
}
