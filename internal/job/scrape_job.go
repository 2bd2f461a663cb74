package job

import (
	"Linkview/internal/model"
	"Linkview/internal/pkg/logger"
	"Linkview/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

type ScrapeJob struct {
	scrapeSvc service.ScrapeService
}

func NewScrapeJob(scrapeSvc service.ScrapeService) *ScrapeJob {
	return &ScrapeJob{scrapeSvc: scrapeSvc}
}

func (s *ScrapeJob) Run() {
	traceID := "job-scrape-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	log.InfoContext(ctx, "start scheduled scrape job")

	summary, err := s.scrapeSvc.Trigger(ctx, model.TriggerAutomatic)
	if err != nil {
		if errors.Is(err, service.ErrScrapeInProgress) {
			log.WarnContext(ctx, "previous scrape still running, skip this tick")
			return
		}
		log.ErrorContext(ctx, "scheduled scrape failed", "err", err)
		return
	}

	log.InfoContext(ctx, "scheduled scrape job finished",
		"total_viewers", summary.TotalViewers,
		"created", summary.Batch.Created,
		"updated", summary.Batch.Updated,
		"duration_seconds", summary.DurationSeconds,
	)
}
