package ruleid

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule id prefixes, one per rule collection.
const (
	PrefixOverride   = "OV"
	PrefixKeyword    = "KW"
	PrefixGroup      = "GM"
	PrefixValidation = "VL"
)

// Format returns a rule ID like "KW007".
func Format(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// Parse splits "KW007" into its letter prefix and sequence number.
func Parse(id string) (prefix string, seq int, err error) {
	i := 0
	for i < len(id) && id[i] >= 'A' && id[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, fmt.Errorf("invalid rule ID format: %q", id)
	}
	seq, err = strconv.Atoi(id[i:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in rule ID %q: %w", id, err)
	}
	return id[:i], seq, nil
}

// Next returns the ID following the highest existing ID with prefix.
// IDs that do not parse or carry another prefix are ignored.
func Next(prefix string, existing []string) string {
	highest := 0
	for _, id := range existing {
		p, seq, err := Parse(strings.TrimSpace(id))
		if err != nil || p != prefix {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}
	return Format(prefix, highest+1)
}
