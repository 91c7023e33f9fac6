// Package ledger holds a period's trial balance and its CSV form.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// Dir is the workspace subdirectory holding one CSV per period.
const Dir = "ledgers"

// Set is a deduplicated trial balance for one period.
type Set struct {
	ledgers []model.LedgerAccount
	byKey   map[model.LedgerKey]int
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byKey: make(map[model.LedgerKey]int)}
}

// Path returns the CSV path of a period inside a workspace.
func Path(root string, period model.Period) string {
	return filepath.Join(root, Dir, string(period)+".csv")
}

// Load reads ledgers/<period>.csv from a workspace root. A missing file gives
// an empty Set.
func Load(root string, period model.Period) (*Set, error) {
	f, err := os.Open(Path(root, period))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("opening %s ledgers: %w", period, err)
	}
	defer f.Close()

	ls, err := ReadLedgers(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s ledgers: %w", period, err)
	}
	s := NewSet()
	if _, err := s.Merge(ls); err != nil {
		return nil, fmt.Errorf("loading %s ledgers: %w", period, err)
	}
	return s, nil
}

// Save writes the Set to ledgers/<period>.csv.
func (s *Set) Save(root string, period model.Period) error {
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return fmt.Errorf("creating ledgers dir: %w", err)
	}

	f, err := os.Create(Path(root, period))
	if err != nil {
		return fmt.Errorf("creating %s ledgers file: %w", period, err)
	}
	defer f.Close()

	if err := WriteLedgers(f, s.ledgers); err != nil {
		return fmt.Errorf("writing %s ledgers: %w", period, err)
	}
	return nil
}

// Merge appends ledgers whose (name, group) is not already present. Duplicates
// are skipped and reported through a *DuplicateLedgerError; the rest are
// still merged.
func (s *Set) Merge(incoming []model.LedgerAccount) (int, error) {
	var dups []model.LedgerKey
	added := 0
	for _, l := range incoming {
		k := l.Key()
		if _, ok := s.byKey[k]; ok {
			dups = append(dups, k)
			continue
		}
		s.byKey[k] = len(s.ledgers)
		s.ledgers = append(s.ledgers, l)
		added++
	}
	if len(dups) > 0 {
		return added, &DuplicateLedgerError{Count: len(dups), Keys: dups}
	}
	return added, nil
}

// All returns the ledgers in insertion order.
func (s *Set) All() []model.LedgerAccount {
	return s.ledgers
}

// Len returns the number of ledgers.
func (s *Set) Len() int {
	return len(s.ledgers)
}

// Get returns a ledger by key.
func (s *Set) Get(k model.LedgerKey) (model.LedgerAccount, bool) {
	i, ok := s.byKey[k]
	if !ok {
		return model.LedgerAccount{}, false
	}
	return s.ledgers[i], true
}

// Exists reports whether a ledger key is present.
func (s *Set) Exists(k model.LedgerKey) bool {
	_, ok := s.byKey[k]
	return ok
}

// ByGroup returns all ledgers under the given source group.
func (s *Set) ByGroup(group string) []model.LedgerAccount {
	var result []model.LedgerAccount
	for _, l := range s.ledgers {
		if l.Group == group {
			result = append(result, l)
		}
	}
	return result
}
