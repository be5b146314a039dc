package service

import (
	"strings"

	"github.com/pageforge/internal/db"
)

// BuildFAQSchema synthesizes a schema.org FAQPage fragment from the given
// pairs. Pairs missing either side are dropped. When nothing valid remains
// the result is an empty object, which callers must read as "no structured
// data to emit" rather than an error.
func BuildFAQSchema(items []db.FAQItem) map[string]any {
	entities := make([]any, 0, len(items))
	for _, item := range items {
		question := strings.TrimSpace(item.Question)
		answer := strings.TrimSpace(item.Answer)
		if question == "" || answer == "" {
			continue
		}
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  answer,
			},
		})
	}

	if len(entities) == 0 {
		return map[string]any{}
	}

	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}
