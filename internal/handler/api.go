package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/feed"
	"github.com/pageforge/internal/render"
	"github.com/pageforge/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	pages      *service.PageService
	generator  *service.GenerationService
	deploys    *service.DeployService
	settings   *service.SiteSettingService
	dispatcher *render.Dispatcher
	feeds      *feed.Generator
	uploadDir  string
	baseURL    string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, baseURL string) *API {
	return &API{
		db:         gdb,
		pages:      service.NewPageService(gdb),
		generator:  service.NewGenerationService(gdb),
		deploys:    service.NewDeployService(gdb),
		settings:   service.NewSiteSettingService(gdb),
		dispatcher: render.NewDispatcher(gdb),
		feeds:      feed.NewGenerator(gdb),
		uploadDir:  uploadDir,
		baseURL:    baseURL,
	}
}

// requestBase derives the scheme and host the current request was served
// under, falling back to the configured site base URL.
func (a *API) requestBase(c *gin.Context) string {
	host := c.Request.Host
	if host == "" {
		return a.baseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + host
}
