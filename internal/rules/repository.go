package rules

import (
	"fmt"

	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Repository loads and saves the four rule collections.
type Repository interface {
	Load() (*Store, error)
	Save(s *Store) error
}

// Backends accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Open returns the repository for a backend. For SQLite the caller must
// Close the returned repository.
func Open(backend, path string, tax *schedule.Taxonomy) (Repository, error) {
	switch backend {
	case "", BackendYAML:
		return &YAMLRepository{Path: path, Taxonomy: tax}, nil
	case BackendSQLite:
		return OpenSQLite(path, tax)
	}
	return nil, fmt.Errorf("unknown rules backend %q", backend)
}
