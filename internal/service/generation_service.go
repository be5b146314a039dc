package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/ingest"
	"gorm.io/gorm"
)

// ErrNoRows means the batch had nothing to process.
var ErrNoRows = errors.New("generation batch contains no rows")

// seedField is the preferred row field for deriving slugs; when a row has no
// value there, the first dataset column is used instead.
const seedField = "keyword"

// MissingVariablesError fails a whole batch before any row is processed,
// carrying the template variables the dataset cannot satisfy.
type MissingVariablesError struct {
	Missing []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("template variables not in dataset: %s", strings.Join(e.Missing, ", "))
}

// RowError records a single failed row without aborting the batch.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// PageRef identifies one successfully generated page in a batch summary.
type PageRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// BatchSummary reports what one generation run produced. Partial batches are
// normal: callers distinguish "nothing generated" from "partially generated"
// by the counts, never by an error value.
type BatchSummary struct {
	BatchID   string     `json:"batchId"`
	Generated int        `json:"generated"`
	Failed    int        `json:"failed"`
	Pages     []PageRef  `json:"pages"`
	Errors    []RowError `json:"errors"`
}

// GenerationService drives one bulk page generation batch.
type GenerationService struct {
	db    *gorm.DB
	pages *PageService
}

// NewGenerationService creates a GenerationService instance.
func NewGenerationService(gdb *gorm.DB) *GenerationService {
	return &GenerationService{db: gdb, pages: NewPageService(gdb)}
}

// Generate validates the template against the dataset once, then processes
// rows strictly in input order: substitute, build the FAQ schema, allocate a
// slug against live store state, persist. A failing row is recorded and the
// batch moves on. Sequential processing is load-bearing: each allocation's
// existence check must observe every page committed earlier in the batch.
func (s *GenerationService) Generate(tpl Template, dataset *ingest.Dataset) (*BatchSummary, error) {
	if err := tpl.CheckRequired(); err != nil {
		return nil, err
	}
	if dataset == nil || len(dataset.Rows) == 0 {
		return nil, ErrNoRows
	}

	validation := ValidateTemplate(tpl, fieldsOf(dataset))
	if !validation.IsValid {
		return nil, &MissingVariablesError{Missing: validation.Missing}
	}

	summary := &BatchSummary{
		BatchID: uuid.New().String(),
		Pages:   []PageRef{},
		Errors:  []RowError{},
	}

	for i, row := range dataset.Rows {
		page, err := s.generateOne(tpl, dataset, row)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		summary.Generated++
		summary.Pages = append(summary.Pages, PageRef{Slug: page.Slug, Title: page.Title})
	}

	return summary, nil
}

func (s *GenerationService) generateOne(tpl Template, dataset *ingest.Dataset, row ingest.Row) (*db.GeneratedPage, error) {
	slug, err := AllocateSlug(slugSeed(dataset, row), s.pages.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	faq := SubstituteFAQ(tpl.FAQ, row)
	page := &db.GeneratedPage{
		Slug:            slug,
		Title:           Substitute(tpl.Title, row),
		MetaDescription: Substitute(tpl.MetaDescription, row),
		H1:              Substitute(tpl.H1, row),
		Sections:        SubstituteSlice(tpl.Sections, row),
		FAQ:             faq,
		FAQSchema:       BuildFAQSchema(faq),
		Vars:            row,
		TemplateKey:     strings.TrimSpace(tpl.TemplateKey),
	}

	// A cross-batch race can slip past the allocator; the slug's unique
	// index turns it into an insert error recorded against this row.
	if err := s.pages.Insert(page); err != nil {
		return nil, fmt.Errorf("persist page %q: %w", slug, err)
	}

	return page, nil
}

// slugSeed picks the row's keyword value, falling back to the value of the
// first dataset column when the keyword field is absent or blank.
func slugSeed(dataset *ingest.Dataset, row ingest.Row) string {
	if seed := strings.TrimSpace(row[seedField]); seed != "" {
		return seed
	}
	if len(dataset.Headers) > 0 {
		return strings.TrimSpace(row[dataset.Headers[0]])
	}
	return ""
}

func fieldsOf(dataset *ingest.Dataset) []string {
	if len(dataset.Headers) > 0 {
		return dataset.Headers
	}
	// Fall back to the first row's keys when the caller supplied rows
	// without header metadata.
	fields := make([]string, 0, len(dataset.Rows[0]))
	for name := range dataset.Rows[0] {
		fields = append(fields, name)
	}
	return fields
}
