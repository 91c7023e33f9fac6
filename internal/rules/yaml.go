package rules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// File is the on-disk layout of a rules YAML file.
type File struct {
	Overrides   []model.OverrideRule   `yaml:"overrides"`
	Keywords    []model.KeywordRule    `yaml:"keywords"`
	Groups      []model.GroupRule      `yaml:"groups"`
	Validations []model.ValidationRule `yaml:"validations"`
}

// ToFile converts a store to its file layout.
func ToFile(s *Store) File {
	return File{
		Overrides:   s.Overrides(),
		Keywords:    s.Keywords(),
		Groups:      s.Groups(),
		Validations: s.Validations(),
	}
}

// FromFile builds a store, rejecting any rule that would not pass Add.
func FromFile(f File, tax *schedule.Taxonomy) (*Store, error) {
	s := NewStore(tax)
	for _, r := range f.Overrides {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	for _, r := range f.Keywords {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	for _, r := range f.Groups {
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	for _, v := range f.Validations {
		if err := s.AddValidation(v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadYAML decodes a rules file.
func ReadYAML(r io.Reader, tax *schedule.Taxonomy) (*Store, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return FromFile(f, tax)
}

// WriteYAML encodes a store as a rules file.
func WriteYAML(w io.Writer, s *Store) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToFile(s)); err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	return enc.Close()
}

// YAMLRepository persists a store in a single YAML file.
type YAMLRepository struct {
	Path     string
	Taxonomy *schedule.Taxonomy
}

// Load reads the rules file.
func (r *YAMLRepository) Load() (*Store, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	defer f.Close()
	return ReadYAML(f, r.Taxonomy)
}

// Save rewrites the rules file.
func (r *YAMLRepository) Save(s *Store) error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	defer f.Close()
	return WriteYAML(f, s)
}
