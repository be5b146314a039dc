package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pageforge/internal/db"
	"gorm.io/gorm"
)

var (
	ErrDeployPageMissing   = errors.New("cannot deploy a page that does not exist")
	ErrDeploymentNotFound  = errors.New("deployment not found")
	errUnknownProviderHost = errors.New("unknown deploy provider")
)

// providerHosts maps a provider tag to the host published pages live under.
var providerHosts = map[string]string{
	"github":  "pages.github.io",
	"netlify": "netlify.app",
	"local":   "pages.local",
}

const defaultProvider = "local"

// DeployService publishes generated pages under separately allocated deploy
// slugs. It reuses the slug allocator, checked against the deployed-page
// table, so deploy slugs are unique independently of page slugs.
type DeployService struct {
	db    *gorm.DB
	pages *PageService
}

// NewDeployService creates a DeployService instance.
func NewDeployService(gdb *gorm.DB) *DeployService {
	return &DeployService{db: gdb, pages: NewPageService(gdb)}
}

// Deploy records a deployment for an existing generated page. The deploy
// slug is derived from the page slug with the usual collision suffixes.
func (s *DeployService) Deploy(pageSlug, provider string) (*db.DeployedPage, error) {
	page, err := s.pages.GetBySlug(pageSlug)
	if err != nil {
		if errors.Is(err, ErrGeneratedPageNotFound) {
			return nil, ErrDeployPageMissing
		}
		return nil, err
	}

	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = defaultProvider
	}
	host, ok := providerHosts[provider]
	if !ok {
		return nil, errUnknownProviderHost
	}

	deploySlug, err := AllocateSlug(page.Slug, s.existsByDeploySlug)
	if err != nil {
		return nil, err
	}

	deployment := &db.DeployedPage{
		PageSlug:   page.Slug,
		DeploySlug: deploySlug,
		URL:        fmt.Sprintf("https://%s/%s", host, deploySlug),
		Provider:   provider,
	}
	if err := s.db.Create(deployment).Error; err != nil {
		return nil, fmt.Errorf("persist deployment %q: %w", deploySlug, err)
	}

	return deployment, nil
}

// ListByPageSlug returns deployments for one page, newest first.
func (s *DeployService) ListByPageSlug(pageSlug string) ([]db.DeployedPage, error) {
	var deployments []db.DeployedPage
	err := s.db.
		Where("page_slug = ?", pageSlug).
		Order("created_at desc").
		Find(&deployments).Error
	if err != nil {
		return nil, err
	}
	return deployments, nil
}

// DeleteByDeploySlug removes one deployment record permanently, freeing the
// deploy slug for reuse.
func (s *DeployService) DeleteByDeploySlug(deploySlug string) error {
	result := s.db.Unscoped().Where("deploy_slug = ?", deploySlug).Delete(&db.DeployedPage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeploymentNotFound
	}
	return nil
}

func (s *DeployService) existsByDeploySlug(candidate string) (bool, error) {
	var count int64
	if err := s.db.Model(&db.DeployedPage{}).Where("deploy_slug = ?", candidate).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
