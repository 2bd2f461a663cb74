package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"context"
	log "log/slog"
	"sync/atomic"
	"time"
)

// Scraper 外部抓取协作方：产出一份原始访客列表与累计总数
type Scraper interface {
	Scrape(ctx context.Context) (*model.ScrapeResult, error)
}

// ScrapeRunSummary 一次抓取周期的结果摘要
type ScrapeRunSummary struct {
	Status          model.ScrapeStatus `json:"status"`
	TotalViewers    int                `json:"total_viewers"`
	Batch           BatchResult        `json:"batch"`
	DurationSeconds float64            `json:"duration_seconds"`
	ScreenshotTaken bool               `json:"screenshot_taken"`
}

type ScrapeService interface {
	// Trigger 执行一个完整抓取周期；已有周期在途时返回 ErrScrapeInProgress（跳过而非排队）
	Trigger(ctx context.Context, trigger model.TriggerKind) (*ScrapeRunSummary, error)
	// Ingest 将一份现成的抓取结果并入存储，与 Trigger 共用在途保护
	Ingest(ctx context.Context, result *model.ScrapeResult, trigger model.TriggerKind) (*ScrapeRunSummary, error)
	Running() bool
	ListLogs(ctx context.Context, limit int64) ([]*model.ScrapeLog, error)
	LastCompleted(ctx context.Context) (*model.ScrapeLog, error)
	// NextScheduledRun 由配置节奏计算下一次计划抓取时间，disabled 返回 false
	NextScheduledRun(now time.Time) (time.Time, bool)
}

type scrapeServiceImpl struct {
	scraper       Scraper
	viewerSvc     ViewerService
	statsSvc      StatsService
	screenshotSvc ScreenshotService
	logRepo       repository.ScrapeLogRepo
	classifier    *Classifier
	cadence       Cadence

	// 在途标记：同一进程内最多一个抓取周期，后到的触发被整体跳过
	inFlight atomic.Bool
}

func NewScrapeService(
	scraper Scraper,
	viewerSvc ViewerService,
	statsSvc StatsService,
	screenshotSvc ScreenshotService,
	logRepo repository.ScrapeLogRepo,
	classifier *Classifier,
	cadence Cadence,
) ScrapeService {
	return &scrapeServiceImpl{
		scraper:       scraper,
		viewerSvc:     viewerSvc,
		statsSvc:      statsSvc,
		screenshotSvc: screenshotSvc,
		logRepo:       logRepo,
		classifier:    classifier,
		cadence:       cadence,
	}
}

func (s *scrapeServiceImpl) Running() bool {
	return s.inFlight.Load()
}

func (s *scrapeServiceImpl) Trigger(ctx context.Context, trigger model.TriggerKind) (*ScrapeRunSummary, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrScrapeInProgress
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	s.appendLog(ctx, &model.ScrapeLog{
		Timestamp: start.UTC(),
		Trigger:   trigger,
		Status:    model.ScrapeStarted,
	})

	result, err := s.scraper.Scrape(ctx)
	if err != nil {
		s.appendLog(ctx, &model.ScrapeLog{
			Timestamp:       time.Now().UTC(),
			Trigger:         trigger,
			Status:          model.ScrapeFailed,
			DurationSeconds: time.Since(start).Seconds(),
			ErrorMessage:    err.Error(),
		})
		return nil, err
	}

	return s.ingest(ctx, result, trigger, start), nil
}

func (s *scrapeServiceImpl) Ingest(ctx context.Context, result *model.ScrapeResult, trigger model.TriggerKind) (*ScrapeRunSummary, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrScrapeInProgress
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	s.appendLog(ctx, &model.ScrapeLog{
		Timestamp: start.UTC(),
		Trigger:   trigger,
		Status:    model.ScrapeStarted,
	})
	return s.ingest(ctx, result, trigger, start), nil
}

// ingest 单次周期的落库流程。访客批量、日汇总、小时快照之间无事务边界，
// 部分失败只记日志不回滚（§错误处理设计：独立时间桶的聚合写可安全重试）
func (s *scrapeServiceImpl) ingest(ctx context.Context, result *model.ScrapeResult, trigger model.TriggerKind, start time.Time) *ScrapeRunSummary {
	now := time.Now()
	batch := s.viewerSvc.ReconcileBatch(ctx, result.Viewers, now)

	if result.TotalViewers > 0 {
		if _, err := s.statsSvc.RecordDailyTotal(ctx, model.DateOf(now), result.TotalViewers); err != nil {
			log.ErrorContext(ctx, "record daily total failed", "err", err)
		}
		if _, err := s.statsSvc.RecordHourlyStat(ctx, now, result.TotalViewers); err != nil {
			log.ErrorContext(ctx, "record hourly stat failed", "err", err)
		}
	}

	screenshotTaken := false
	if len(result.Screenshot) > 0 {
		if _, err := s.screenshotSvc.SavePNG(ctx, result.Screenshot, now); err != nil {
			log.ErrorContext(ctx, "save screenshot failed", "err", err)
		} else {
			screenshotTaken = true
		}
	}

	summary := &ScrapeRunSummary{
		Status:          model.ScrapeCompleted,
		TotalViewers:    result.TotalViewers,
		Batch:           batch,
		DurationSeconds: time.Since(start).Seconds(),
		ScreenshotTaken: screenshotTaken,
	}

	s.appendLog(ctx, &model.ScrapeLog{
		Timestamp:       time.Now().UTC(),
		Trigger:         trigger,
		Status:          model.ScrapeCompleted,
		DurationSeconds: summary.DurationSeconds,
		TotalViewers:    result.TotalViewers,
		FreeViewers:     s.countFree(result.Viewers),
		ScreenshotTaken: screenshotTaken,
	})

	log.InfoContext(ctx, "scrape cycle completed",
		"trigger", trigger,
		"total_viewers", result.TotalViewers,
		"created", batch.Created,
		"updated", batch.Updated,
		"skipped", batch.Skipped,
		"failed", batch.Failed,
	)
	return summary
}

func (s *scrapeServiceImpl) countFree(raws []model.RawViewer) int {
	count := 0
	for _, raw := range raws {
		name := CleanViewerName(raw.Name)
		if name == "" {
			continue
		}
		if s.classifier.Classify(name) == model.CategoryFree {
			count++
		}
	}
	return count
}

// appendLog 审计日志尽力写入，失败不影响周期本身
func (s *scrapeServiceImpl) appendLog(ctx context.Context, entry *model.ScrapeLog) {
	if err := s.logRepo.Insert(ctx, entry); err != nil {
		log.ErrorContext(ctx, "append scrape log failed", "status", entry.Status, "err", err)
	}
}

func (s *scrapeServiceImpl) ListLogs(ctx context.Context, limit int64) ([]*model.ScrapeLog, error) {
	return s.logRepo.ListRecent(ctx, limit)
}

func (s *scrapeServiceImpl) LastCompleted(ctx context.Context) (*model.ScrapeLog, error) {
	return s.logRepo.LatestCompleted(ctx)
}

func (s *scrapeServiceImpl) NextScheduledRun(now time.Time) (time.Time, bool) {
	return NextRun(now, s.cadence)
}
