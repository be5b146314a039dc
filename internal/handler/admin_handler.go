package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an admin and starts a session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", payload.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Status(http.StatusNoContent)
}

// AuthRequired rejects requests without an authenticated session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Stats reports page counts overall and per template key.
func (a *API) Stats(c *gin.Context) {
	total, err := a.pages.CountAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to count pages")
		return
	}

	byKey, err := a.pages.CountByTemplateKey()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to count pages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":         total,
		"byTemplateKey": byKey,
	})
}

// GetSettings returns the configurable rendering context.
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves the configurable rendering context.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload struct {
		SiteName    string `json:"siteName"`
		TitleSuffix string `json:"titleSuffix"`
	}
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	updated, err := a.settings.UpdateSettings(service.SiteSettings{
		SiteName:    payload.SiteName,
		TitleSuffix: payload.TitleSuffix,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	c.JSON(http.StatusOK, updated)
}
