package api

import "Linkview/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ViewerHandler     *handler.ViewerHandler
	StatsHandler      *handler.StatsHandler
	ScrapeHandler     *handler.ScrapeHandler
	ScreenshotHandler *handler.ScreenshotHandler
}
