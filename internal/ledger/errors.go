package ledger

import (
	"fmt"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// DuplicateLedgerError reports ledgers skipped on merge because their
// (name, group) was already present. It is informational: the merge went
// ahead with the rest.
type DuplicateLedgerError struct {
	Count int
	Keys  []model.LedgerKey
}

func (e *DuplicateLedgerError) Error() string {
	return fmt.Sprintf("%d duplicate ledgers skipped", e.Count)
}
