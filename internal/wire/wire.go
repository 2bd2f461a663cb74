package wire

import (
	"Linkview/internal/api"
	"Linkview/internal/api/config"
	"Linkview/internal/api/handler"
	"Linkview/internal/job"
	"Linkview/internal/pkg/cron"
	"Linkview/internal/repository"
	"Linkview/internal/scraper"
	"Linkview/internal/service"
	"Linkview/internal/storage"
	"time"

	"github.com/gin-gonic/gin"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	Store   storage.Store
	Scraper *scraper.LinkedInScraper
	CronMgr *cron.Manager
}

func BuildApplication(store storage.Store, cfg *config.Config) (*ApplicationContainer, error) {
	viewerRepo := repository.NewViewerRepo(store)
	dailyRepo := repository.NewDailyTotalRepo(store)
	hourlyRepo := repository.NewHourlyStatRepo(store)
	logRepo := repository.NewScrapeLogRepo(store)
	screenshotRepo := repository.NewScreenshotRepo(store)

	classifier := service.NewClassifier(nil)
	dedupWindow := time.Duration(cfg.Scraper.DedupWindowDays) * 24 * time.Hour
	cadence := service.Cadence(cfg.Schedule.Cadence)

	linkedinScraper := scraper.NewLinkedInScraper(cfg.Scraper)

	viewerService := service.NewViewerService(viewerRepo, classifier, dedupWindow)
	statsService := service.NewStatsService(dailyRepo, hourlyRepo, viewerRepo, screenshotRepo)
	screenshotService := service.NewScreenshotService(screenshotRepo)
	scrapeService := service.NewScrapeService(
		linkedinScraper,
		viewerService,
		statsService,
		screenshotService,
		logRepo,
		classifier,
		cadence,
	)

	handlers := &api.HandlersGroup{
		ViewerHandler:     handler.NewViewerHandler(viewerService),
		StatsHandler:      handler.NewStatsHandler(statsService),
		ScrapeHandler:     handler.NewScrapeHandler(scrapeService, cadence),
		ScreenshotHandler: handler.NewScreenshotHandler(screenshotService),
	}

	router := api.SetupRouter(handlers)

	scrapeJob := job.NewScrapeJob(scrapeService)
	cronMgr := cron.NewCronManager(scrapeJob, cfg.Schedule.CronSpec, cadence != service.CadenceDisabled)

	return &ApplicationContainer{
		Router:  router,
		Store:   store,
		Scraper: linkedinScraper,
		CronMgr: cronMgr,
	}, nil
}
