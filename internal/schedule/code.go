// Package schedule defines the Schedule III statement code hierarchy and the
// note-number allocator over it.
package schedule

import (
	"strings"
)

// Separator joins the segments of a code string.
const Separator = "-"

// MinAssignableLevel is the shallowest level a ledger may be classified to.
// Levels 1 and 2 are section headers.
const MinAssignableLevel = 3

// Code is a decoded statement code: area, face group, note group, sub-note.
type Code struct {
	Area      string
	FaceGroup string
	NoteGroup string
	SubNote   string
}

func (c Code) segments() []string {
	return []string{c.Area, c.FaceGroup, c.NoteGroup, c.SubNote}
}

// String returns the canonical "-"-joined encoding.
func (c Code) String() string {
	var parts []string
	for _, s := range c.segments() {
		if s == "" {
			break
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, Separator)
}

// Level is the number of non-empty segments.
func (c Code) Level() int {
	n := 0
	for _, s := range c.segments() {
		if s == "" {
			break
		}
		n++
	}
	return n
}

// Note returns the level-3 prefix of the code.
func (c Code) Note() Code {
	return Code{Area: c.Area, FaceGroup: c.FaceGroup, NoteGroup: c.NoteGroup}
}

// Level3Match reports whether two codes agree on area, face group and note
// group. Sub-notes are ignored.
func Level3Match(a, b Code) bool {
	if a.Level() < MinAssignableLevel || b.Level() < MinAssignableLevel {
		return false
	}
	return a.Note() == b.Note()
}

// Decode parses an assignable code string.
func Decode(s string) (Code, error) {
	c, err := parse(s)
	if err != nil {
		return Code{}, err
	}
	if c.Level() < MinAssignableLevel {
		return Code{}, &MalformedCodeError{Code: s, Reason: "fewer than 3 segments"}
	}
	return c, nil
}

// MustDecode is Decode for codes known at compile time. It panics on error.
func MustDecode(s string) Code {
	c, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parse decodes a code of any level.
func parse(s string) (Code, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Code{}, &MalformedCodeError{Code: s, Reason: "empty"}
	}
	parts := strings.Split(trimmed, Separator)
	if len(parts) > 4 {
		return Code{}, &MalformedCodeError{Code: s, Reason: "more than 4 segments"}
	}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Code{}, &MalformedCodeError{Code: s, Reason: "empty segment"}
		}
		parts[i] = strings.TrimSpace(p)
	}
	var c Code
	fields := []*string{&c.Area, &c.FaceGroup, &c.NoteGroup, &c.SubNote}
	for i, p := range parts {
		*fields[i] = p
	}
	return c, nil
}
