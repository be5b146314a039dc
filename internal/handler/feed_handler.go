package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sitemap serves the XML sitemap derived from the current page set.
func (a *API) Sitemap(c *gin.Context) {
	body, err := a.feeds.Sitemap(a.requestBase(c))
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots serves the crawl policy.
func (a *API) Robots(c *gin.Context) {
	c.String(http.StatusOK, a.feeds.Robots(a.requestBase(c)))
}
