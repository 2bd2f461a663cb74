package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"Linkview/internal/storage"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScraper struct {
	result  *model.ScrapeResult
	err     error
	release chan struct{}
	calls   int
}

func (s *stubScraper) Scrape(ctx context.Context) (*model.ScrapeResult, error) {
	s.calls++
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

type scrapeFixture struct {
	svc        ScrapeService
	viewerRepo repository.ViewerRepo
	statsSvc   StatsService
	logRepo    repository.ScrapeLogRepo
}

func setupScrapeService(t *testing.T, scraper Scraper) *scrapeFixture {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	viewerRepo := repository.NewViewerRepo(store)
	dailyRepo := repository.NewDailyTotalRepo(store)
	hourlyRepo := repository.NewHourlyStatRepo(store)
	logRepo := repository.NewScrapeLogRepo(store)
	screenshotRepo := repository.NewScreenshotRepo(store)

	classifier := NewClassifier(nil)
	viewerSvc := NewViewerService(viewerRepo, classifier, 7*24*time.Hour)
	statsSvc := NewStatsService(dailyRepo, hourlyRepo, viewerRepo, screenshotRepo)
	screenshotSvc := NewScreenshotService(screenshotRepo)

	svc := NewScrapeService(scraper, viewerSvc, statsSvc, screenshotSvc, logRepo, classifier, CadenceHourly)
	return &scrapeFixture{
		svc:        svc,
		viewerRepo: viewerRepo,
		statsSvc:   statsSvc,
		logRepo:    logRepo,
	}
}

func TestTriggerFullCycle(t *testing.T) {
	scraper := &stubScraper{
		result: &model.ScrapeResult{
			TotalViewers: 150,
			Viewers: []model.RawViewer{
				{Name: "Alice Johnson", Headline: "Engineer"},
				{Name: "Someone at Microsoft"},
				{Name: "   "},
			},
		},
	}
	f := setupScrapeService(t, scraper)
	ctx := context.Background()

	summary, err := f.svc.Trigger(ctx, model.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, model.ScrapeCompleted, summary.Status)
	assert.Equal(t, 150, summary.TotalViewers)
	assert.Equal(t, 2, summary.Batch.Created)
	assert.Equal(t, 1, summary.Batch.Skipped)
	assert.False(t, summary.ScreenshotTaken)

	count, err := f.viewerRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	totals, err := f.statsSvc.GetDailyTotals(ctx, 0)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 150, *totals[0].AbsoluteTotal)
	assert.Equal(t, 150, totals[0].IncrementTotal)

	stats, err := f.statsSvc.GetHourlyStats(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 150, stats[0].TotalViewers)

	// 审计日志：started + completed
	logs, err := f.svc.ListLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	last, err := f.svc.LastCompleted(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, model.TriggerManual, last.Trigger)
	assert.Equal(t, 150, last.TotalViewers)
	assert.Equal(t, 1, last.FreeViewers)
}

func TestTriggerZeroTotalSkipsRollups(t *testing.T) {
	scraper := &stubScraper{result: &model.ScrapeResult{TotalViewers: 0}}
	f := setupScrapeService(t, scraper)
	ctx := context.Background()

	_, err := f.svc.Trigger(ctx, model.TriggerAutomatic)
	require.NoError(t, err)

	totals, err := f.statsSvc.GetDailyTotals(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestTriggerScrapeFailureLogged(t *testing.T) {
	scraper := &stubScraper{err: errors.New("chrome exited")}
	f := setupScrapeService(t, scraper)
	ctx := context.Background()

	_, err := f.svc.Trigger(ctx, model.TriggerManual)
	require.Error(t, err)

	logs, err := f.svc.ListLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	var failed *model.ScrapeLog
	for _, entry := range logs {
		if entry.Status == model.ScrapeFailed {
			failed = entry
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "chrome exited", failed.ErrorMessage)

	last, err := f.svc.LastCompleted(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestTriggerRejectsConcurrentRun(t *testing.T) {
	scraper := &stubScraper{
		result:  &model.ScrapeResult{TotalViewers: 10},
		release: make(chan struct{}),
	}
	f := setupScrapeService(t, scraper)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Trigger(ctx, model.TriggerAutomatic)
		done <- err
	}()

	// 等待第一个周期进入抓取阶段
	require.Eventually(t, f.svc.Running, time.Second, 5*time.Millisecond)

	_, err := f.svc.Trigger(ctx, model.TriggerManual)
	assert.ErrorIs(t, err, ErrScrapeInProgress)

	close(scraper.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, scraper.calls)
}

func TestIngestSharesInFlightGuard(t *testing.T) {
	scraper := &stubScraper{
		result:  &model.ScrapeResult{TotalViewers: 10},
		release: make(chan struct{}),
	}
	f := setupScrapeService(t, scraper)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Trigger(ctx, model.TriggerAutomatic)
		done <- err
	}()
	require.Eventually(t, f.svc.Running, time.Second, 5*time.Millisecond)

	_, err := f.svc.Ingest(ctx, &model.ScrapeResult{TotalViewers: 5}, model.TriggerManual)
	assert.ErrorIs(t, err, ErrScrapeInProgress)

	close(scraper.release)
	require.NoError(t, <-done)
}
