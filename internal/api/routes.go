// Package api exposes scored deals over a small read-only HTTP surface.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxsale-agent/internal/logger"
)

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(scoredPath string, log logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(securityHeaders())
	r.Use(requestLogging(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	deals := NewDealsHandler(scoredPath, log)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/deals", deals.GetDeals)
		v1.GET("/deals/:id", deals.GetDeal)
	}

	return r
}
