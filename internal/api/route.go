package api

import (
	"Linkview/internal/api/middleware"
	"Linkview/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		viewerGroup := apiGroup.Group("/viewers")
		{
			viewerGroup.GET("", group.ViewerHandler.List)
			viewerGroup.GET("/export", group.ViewerHandler.ExportCSV)
		}

		apiGroup.GET("/stats", group.StatsHandler.Overview)
		apiGroup.GET("/daily-totals", group.StatsHandler.DailyTotals)
		apiGroup.GET("/hourly-stats", group.StatsHandler.HourlyStats)

		apiGroup.POST("/scrape", group.ScrapeHandler.Trigger)

		logGroup := apiGroup.Group("/scraping-logs")
		{
			logGroup.GET("", group.ScrapeHandler.Logs)
			logGroup.GET("/last", group.ScrapeHandler.LastLog)
			logGroup.GET("/next-run", group.ScrapeHandler.NextRun)
		}

		screenshotGroup := apiGroup.Group("/screenshots")
		{
			screenshotGroup.GET("", group.ScreenshotHandler.List)
			screenshotGroup.GET("/:filename", group.ScreenshotHandler.Get)
		}
	}

	return r
}
