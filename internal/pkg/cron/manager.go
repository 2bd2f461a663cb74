package cron

import (
	"Linkview/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine    *cron.Cron
	spec      string
	enabled   bool
	scrapeJob *job.ScrapeJob
}

func NewCronManager(scrapeJob *job.ScrapeJob, spec string, enabled bool) *Manager {
	return &Manager{
		engine:    cron.New(cron.WithSeconds()),
		spec:      spec,
		enabled:   enabled,
		scrapeJob: scrapeJob,
	}
}

// RegisterJobs 注册定时任务，调度停用时不注册
func (s *Manager) RegisterJobs() error {
	if !s.enabled {
		log.Info("scheduled scraping disabled, no cron jobs registered")
		return nil
	}
	if _, err := s.engine.AddJob(s.spec, s.scrapeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
