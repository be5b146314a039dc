package service

import (
	"regexp"
	"strings"

	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/ingest"
)

// placeholderPattern matches {field} tokens. Nested braces are not a thing
// in this template language, so the inner match excludes both brace kinds.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Substitute replaces every {field} token whose key exists in the row with
// that row's value. Tokens for keys absent from the row stay verbatim, which
// makes the operation idempotent for them. Replacement values are never
// re-scanned for further tokens.
func Substitute(s string, row ingest.Row) string {
	if s == "" || len(row) == 0 {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(token string) string {
		key := strings.ToLower(strings.TrimSpace(token[1 : len(token)-1]))
		value, ok := row[key]
		if !ok {
			return token
		}
		return value
	})
}

// SubstituteSlice applies Substitute to every entry, preserving order.
func SubstituteSlice(values []string, row ingest.Row) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Substitute(v, row)
	}
	return out
}

// SubstituteFAQ applies Substitute to both sides of every pair.
func SubstituteFAQ(items []db.FAQItem, row ingest.Row) []db.FAQItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]db.FAQItem, len(items))
	for i, item := range items {
		out[i] = db.FAQItem{
			Question: Substitute(item.Question, row),
			Answer:   Substitute(item.Answer, row),
		}
	}
	return out
}
