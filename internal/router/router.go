package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pageforge/internal/config"
	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/handler"
)

// SetupRouter configures the Gin engine and routes.
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("pageforge_session", store))

	api := handler.NewAPI(db.DB, cfg.UploadDir, cfg.SiteBaseURL)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public surface: rendered pages and crawler feeds.
	r.GET("/p/:slug", api.ShowPage)
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)

	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.POST("/generate", api.Generate)

			auth.GET("/pages", api.ListPages)
			auth.DELETE("/pages/:slug", api.DeletePage)
			auth.DELETE("/pages", api.DeletePagesByTemplateKey)

			auth.POST("/deploy/:slug", api.DeployPage)
			auth.GET("/deployments/:slug", api.ListDeployments)
			auth.DELETE("/deployments/:deploySlug", api.DeleteDeployment)

			auth.GET("/stats", api.Stats)
			auth.GET("/settings", api.GetSettings)
			auth.PUT("/settings", api.UpdateSettings)
		}
	}

	return r
}
