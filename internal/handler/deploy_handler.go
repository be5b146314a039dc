package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/service"
)

type deployPayload struct {
	Provider string `json:"provider"`
}

// DeployPage publishes a generated page under a freshly allocated deploy slug.
func (a *API) DeployPage(c *gin.Context) {
	var payload deployPayload
	// The body is optional; an empty provider falls back to the default.
	_ = c.ShouldBindJSON(&payload)

	deployment, err := a.deploys.Deploy(c.Param("slug"), payload.Provider)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDeployPageMissing):
			respondError(c, http.StatusNotFound, "page not found")
		default:
			respondError(c, http.StatusInternalServerError, "failed to deploy page")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"pageSlug":   deployment.PageSlug,
		"deploySlug": deployment.DeploySlug,
		"url":        deployment.URL,
		"provider":   deployment.Provider,
	})
}

// ListDeployments returns the deployments recorded for one page.
func (a *API) ListDeployments(c *gin.Context) {
	deployments, err := a.deploys.ListByPageSlug(c.Param("slug"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list deployments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deployments": deployments})
}

// DeleteDeployment removes one deployment record.
func (a *API) DeleteDeployment(c *gin.Context) {
	if err := a.deploys.DeleteByDeploySlug(c.Param("deploySlug")); err != nil {
		if errors.Is(err, service.ErrDeploymentNotFound) {
			respondError(c, http.StatusNotFound, "deployment not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete deployment")
		return
	}
	c.Status(http.StatusNoContent)
}
