package transport

import (
	"net/http"

	"github.com/ds124wfegd/animegen/internal/transport/middleware"
	"github.com/ds124wfegd/animegen/internal/web"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	// MetricsPath is left unrouted when empty.
	MetricsPath    string
	MetricsHandler http.Handler
	PreviewMode    bool
}

func InitRoutes(generateHandler *GenerateHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})

	api := router.Group("/api")
	{
		api.POST("/generate", generateHandler.Generate)
	}

	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		router.GET(opts.MetricsPath, gin.WrapH(opts.MetricsHandler))
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      "animegen-relay",
			"preview_mode": opts.PreviewMode,
		})
	})
	return router
}
