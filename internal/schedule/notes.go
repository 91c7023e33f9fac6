package schedule

import (
	"fmt"
)

// Range is an inclusive span of note numbers. Zero means empty.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Empty reports whether no note falls in the range.
func (r Range) Empty() bool { return r.First == 0 }

// NoteMap assigns a display note number to each numbered code.
type NoteMap struct {
	Numbers     map[string]int
	Contingent  int // zero when no contingent-liabilities note was allocated
	BalanceRows Range
	ProfitRows  Range
}

// Lookup returns the note number of a code. Sub-notes share the number of
// their level-3 parent.
func (m NoteMap) Lookup(code string) (int, bool) {
	c, err := Decode(code)
	if err != nil {
		return 0, false
	}
	n, ok := m.Numbers[c.Note().String()]
	return n, ok
}

// BuildNoteNumberMap numbers Balance Sheet notes from start in declaration
// order, optionally reserves one slot for contingent liabilities, then
// continues through Profit and Loss notes. It does not look at ledger data.
func (t *Taxonomy) BuildNoteNumberMap(start int, includeContingent bool) (NoteMap, error) {
	if start < 1 {
		return NoteMap{}, fmt.Errorf("start note number must be at least 1, got %d", start)
	}
	m := NoteMap{Numbers: make(map[string]int)}
	next := start

	assign := func(st Statements) Range {
		var r Range
		for e := range t.Notes(st) {
			key := e.Code.String()
			if _, done := m.Numbers[key]; done {
				continue
			}
			m.Numbers[key] = next
			if r.First == 0 {
				r.First = next
			}
			r.Last = next
			next++
		}
		return r
	}

	m.BalanceRows = assign(BalanceSheet)
	if includeContingent {
		m.Contingent = next
		next++
	}
	m.ProfitRows = assign(ProfitLoss)
	return m, nil
}

// BuildNoteNumberMap runs the allocator over the default taxonomy.
func BuildNoteNumberMap(start int, includeContingent bool) (NoteMap, error) {
	return Default().BuildNoteNumberMap(start, includeContingent)
}
