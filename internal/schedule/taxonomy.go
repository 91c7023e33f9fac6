package schedule

import (
	"fmt"
	"iter"
	"sync"
)

// Statements is a set of financial statements a code belongs to.
type Statements uint8

const (
	BalanceSheet Statements = 1 << iota
	ProfitLoss
)

// Has reports whether s includes every statement in x.
func (s Statements) Has(x Statements) bool {
	return s&x == x
}

func (s Statements) String() string {
	switch s {
	case BalanceSheet:
		return "BS"
	case ProfitLoss:
		return "PL"
	case BalanceSheet | ProfitLoss:
		return "BS-PL"
	}
	return ""
}

// Entry is one row of the taxonomy.
type Entry struct {
	Code          Code
	Description   string
	Statements    Statements
	Note          bool // carries its own note number
	Uncategorised bool // catch-all line, never numbered
}

// Level is the depth of the entry's code.
func (e Entry) Level() int { return e.Code.Level() }

// Assignable reports whether a ledger may be classified to this entry.
func (e Entry) Assignable() bool { return e.Level() >= MinAssignableLevel }

// Taxonomy is an immutable, ordered set of statement codes.
type Taxonomy struct {
	entries []Entry
	byCode  map[string]int
}

// New builds a taxonomy from entries in declaration order. Every code must
// be unique and every non-root code must follow its parent.
func New(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{
		entries: make([]Entry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := e.Code.String()
		if _, dup := t.byCode[key]; dup {
			return nil, fmt.Errorf("duplicate code %s", key)
		}
		if lvl := e.Level(); lvl > 1 {
			parent := Code{}
			segs := e.Code.segments()
			pf := []*string{&parent.Area, &parent.FaceGroup, &parent.NoteGroup}
			for i := 0; i < lvl-1; i++ {
				*pf[i] = segs[i]
			}
			if _, ok := t.byCode[parent.String()]; !ok {
				return nil, fmt.Errorf("code %s declared before its parent %s", key, parent)
			}
		}
		if e.Statements == 0 {
			return nil, fmt.Errorf("code %s belongs to no statement", key)
		}
		t.byCode[key] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

var defaultTaxonomy = sync.OnceValue(func() *Taxonomy {
	t, err := New(defaultEntries())
	if err != nil {
		panic("schedule: invalid default taxonomy: " + err.Error())
	}
	return t
})

// Default returns the built-in Schedule III taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy()
}

// Len returns the number of entries.
func (t *Taxonomy) Len() int { return len(t.entries) }

// Lookup returns the entry for a code string of any level.
func (t *Taxonomy) Lookup(code string) (Entry, bool) {
	c, err := parse(code)
	if err != nil {
		return Entry{}, false
	}
	i, ok := t.byCode[c.String()]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Resolve validates a code a rule wants to assign. It returns
// *MalformedCodeError for undecodable strings and *UnknownCodeError for codes
// that are absent or not assignable.
func (t *Taxonomy) Resolve(code string) (Entry, error) {
	c, err := Decode(code)
	if err != nil {
		return Entry{}, err
	}
	i, ok := t.byCode[c.String()]
	if !ok {
		return Entry{}, &UnknownCodeError{Code: code, Suggestions: t.Suggest(code, 3)}
	}
	return t.entries[i], nil
}

// NoteOf returns the level-3 entry that a code rolls up to.
func (t *Taxonomy) NoteOf(code string) (Entry, bool) {
	c, err := Decode(code)
	if err != nil {
		return Entry{}, false
	}
	return t.Lookup(c.Note().String())
}

// All yields every entry in declaration order.
func (t *Taxonomy) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// AllNotableCodes yields every assignable entry in declaration order. The
// sequence is lazy and may be ranged over any number of times.
func (t *Taxonomy) AllNotableCodes() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !e.Assignable() {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Notes yields the numbered level-3 entries of one statement in declaration
// order.
func (t *Taxonomy) Notes(st Statements) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !e.Note || e.Uncategorised || !e.Statements.Has(st) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Lines yields every level-3 entry of one statement, numbered or not.
func (t *Taxonomy) Lines(st Statements) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if e.Level() != MinAssignableLevel || !e.Statements.Has(st) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
