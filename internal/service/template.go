package service

import (
	"errors"
	"strings"

	"github.com/pageforge/internal/db"
)

// ErrTemplateIncomplete means the template is missing one of its required
// top-level fields and cannot drive a batch at all.
var ErrTemplateIncomplete = errors.New("template is missing required fields")

// Template is the declarative skeleton one batch fills from row data.
// Every string field may embed {field} placeholders; Variables is the
// caller-declared manifest of row fields the template requires.
type Template struct {
	TemplateKey     string       `json:"templateKey"`
	Title           string       `json:"title"`
	MetaDescription string       `json:"metaDescription"`
	H1              string       `json:"h1"`
	Variables       []string     `json:"variables"`
	Sections        []string     `json:"sections"`
	FAQ             []db.FAQItem `json:"faq"`
}

// CheckRequired reports ErrTemplateIncomplete when any of the mandatory
// template fields is blank.
func (t Template) CheckRequired() error {
	if strings.TrimSpace(t.TemplateKey) == "" ||
		strings.TrimSpace(t.Title) == "" ||
		strings.TrimSpace(t.MetaDescription) == "" ||
		strings.TrimSpace(t.H1) == "" {
		return ErrTemplateIncomplete
	}
	return nil
}

// ValidationResult lists the declared variables the dataset cannot satisfy.
type ValidationResult struct {
	Missing []string `json:"missing"`
	IsValid bool     `json:"isValid"`
}

// ValidateTemplate checks the template's declared variables against the
// available field names. It trusts the manifest: placeholders that appear in
// template strings without being declared are not flagged here, and
// substitution later leaves unresolvable tokens verbatim.
func ValidateTemplate(tpl Template, available []string) ValidationResult {
	fields := make(map[string]bool, len(available))
	for _, name := range available {
		fields[strings.ToLower(strings.TrimSpace(name))] = true
	}

	missing := []string{}
	for _, variable := range tpl.Variables {
		normalized := strings.ToLower(strings.TrimSpace(variable))
		if normalized == "" {
			continue
		}
		if !fields[normalized] {
			missing = append(missing, normalized)
		}
	}

	return ValidationResult{Missing: missing, IsValid: len(missing) == 0}
}
