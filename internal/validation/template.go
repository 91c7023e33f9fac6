package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholders accepted in message templates.
const (
	PlaceholderLedgerName = "ledger_name"
	PlaceholderAmount     = "amount"
)

// Render fills {ledger_name} and {amount} in a message template. Unknown
// placeholders and unbalanced braces are errors.
func Render(tmpl, ledgerName string, amount decimal.Decimal) (string, error) {
	var b strings.Builder
	rest := tmpl
	for {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		if rest[open] == '}' {
			return "", fmt.Errorf("unmatched '}' in template %q", tmpl)
		}
		b.WriteString(rest[:open])
		rest = rest[open+1:]

		end := strings.IndexAny(rest, "{}")
		if end < 0 || rest[end] != '}' {
			return "", fmt.Errorf("unclosed placeholder in template %q", tmpl)
		}
		switch name := rest[:end]; name {
		case PlaceholderLedgerName:
			b.WriteString(ledgerName)
		case PlaceholderAmount:
			b.WriteString(amount.StringFixed(2))
		default:
			return "", fmt.Errorf("unknown placeholder {%s} in template %q", name, tmpl)
		}
		rest = rest[end+1:]
	}
}
