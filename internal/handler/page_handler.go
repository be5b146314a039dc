package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/service"
)

// ShowPage renders a generated page as a full HTML document. Unknown slugs
// get the stable not-found document with a 404 status, never a server fault.
func (a *API) ShowPage(c *gin.Context) {
	doc, err := a.dispatcher.Render(a.requestBase(c), c.Param("slug"))
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusOK
	if doc.NotFound {
		status = http.StatusNotFound
	}
	c.Data(status, "text/html; charset=utf-8", []byte(doc.HTML))
}

// ListPages returns a paginated listing, optionally filtered by templateKey.
func (a *API) ListPages(c *gin.Context) {
	filter := service.PageFilter{
		TemplateKey: strings.TrimSpace(c.Query("templateKey")),
		Page:        parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:     parsePositiveInt(c.DefaultQuery("limit", "20"), 20),
	}

	result, err := a.pages.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list pages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pages":      result.Pages,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// DeletePage removes one generated page by slug.
func (a *API) DeletePage(c *gin.Context) {
	if err := a.pages.DeleteBySlug(c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrGeneratedPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete page")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePagesByTemplateKey removes every page generated from one template.
func (a *API) DeletePagesByTemplateKey(c *gin.Context) {
	key := strings.TrimSpace(c.Query("templateKey"))
	if key == "" {
		respondError(c, http.StatusBadRequest, "templateKey is required")
		return
	}

	count, err := a.pages.DeleteByTemplateKey(key)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
