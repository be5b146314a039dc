package service

import (
	"errors"
	"strings"

	"github.com/pageforge/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGeneratedPageNotFound = errors.New("generated page not found")
)

// PageService wraps generated-page database operations.
type PageService struct {
	db *gorm.DB
}

// PageFilter describes filters for listing generated pages.
type PageFilter struct {
	TemplateKey string
	Page        int
	PerPage     int
}

// PageListResult aggregates paginated list data and counters.
type PageListResult struct {
	Pages      []db.GeneratedPage
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.GeneratedPage, error) {
	var page db.GeneratedPage
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGeneratedPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// ExistsBySlug reports whether a page with the slug is already stored.
func (s *PageService) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := s.db.Model(&db.GeneratedPage{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert persists a new page. A duplicate slug surfaces as the driver's
// unique-constraint error and is left for the caller to record.
func (s *PageService) Insert(page *db.GeneratedPage) error {
	return s.db.Create(page).Error
}

// DeleteBySlug removes a single page. Deletes are permanent: a soft-deleted
// row would keep holding the slug's unique index and block reallocation.
func (s *PageService) DeleteBySlug(slug string) error {
	result := s.db.Unscoped().Where("slug = ?", slug).Delete(&db.GeneratedPage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGeneratedPageNotFound
	}
	return nil
}

// DeleteByTemplateKey removes every page produced by the given template and
// returns how many were deleted.
func (s *PageService) DeleteByTemplateKey(templateKey string) (int64, error) {
	result := s.db.Unscoped().Where("template_key = ?", templateKey).Delete(&db.GeneratedPage{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListRelated returns up to limit pages sharing a template key, excluding
// the page identified by excludeSlug. Used for cross-linking at render time.
func (s *PageService) ListRelated(templateKey, excludeSlug string, limit int) ([]db.GeneratedPage, error) {
	if limit <= 0 {
		return nil, nil
	}
	var pages []db.GeneratedPage
	err := s.db.
		Where("template_key = ? AND slug <> ?", templateKey, excludeSlug).
		Order("created_at desc").
		Limit(limit).
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// List returns a page of stored documents, newest first, optionally filtered
// by template key.
func (s *PageService) List(filter PageFilter) (*PageListResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	query := s.db.Model(&db.GeneratedPage{})
	if key := strings.TrimSpace(filter.TemplateKey); key != "" {
		query = query.Where("template_key = ?", key)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var pages []db.GeneratedPage
	err := query.
		Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&pages).Error
	if err != nil {
		return nil, err
	}

	return &PageListResult{
		Pages:      pages,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// ListAll returns every stored page ordered by creation time. The feed
// generator uses it to derive the sitemap.
func (s *PageService) ListAll() ([]db.GeneratedPage, error) {
	var pages []db.GeneratedPage
	if err := s.db.Order("created_at asc").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// CountAll returns the number of stored pages.
func (s *PageService) CountAll() (int64, error) {
	var count int64
	if err := s.db.Model(&db.GeneratedPage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByTemplateKey returns counts grouped by template key.
func (s *PageService) CountByTemplateKey() (map[string]int64, error) {
	type keyCount struct {
		TemplateKey string
		Count       int64
	}
	var rows []keyCount
	err := s.db.Model(&db.GeneratedPage{}).
		Select("template_key, count(*) as count").
		Group("template_key").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.TemplateKey] = row.Count
	}
	return counts, nil
}
