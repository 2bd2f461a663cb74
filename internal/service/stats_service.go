package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"context"
	"time"
)

// StatsOverview 聚合统计视图
type StatsOverview struct {
	TotalProfileViews  int   `json:"total_profile_views"` // 来源页最近一次上报的累计总数
	TotalViewerRecords int64 `json:"total_viewer_records"`
	FreeViewerCount    int64 `json:"free_viewer_count"`
	PremiumViewerCount int64 `json:"premium_viewer_count"`
	TotalDailyRecords  int64 `json:"total_daily_records"`
	TotalScreenshots   int64 `json:"total_screenshots"`
}

type StatsService interface {
	// RecordDailyTotal 写入某日的累计总数并计算相对最近一条更早记录的增量，
	// 按 date 键覆盖（同日二次抓取覆盖而非累加）；来源计数器回退产生的负增量原样保留
	RecordDailyTotal(ctx context.Context, date string, absoluteTotal int) (*model.DailyTotal, error)
	// RecordHourlyStat 将时间戳归一化到整点桶后写入快照，
	// 增量相对上一个整点桶计算且下限为 0，上一桶缺失时按 0 处理
	RecordHourlyStat(ctx context.Context, ts time.Time, absoluteTotal int) (*model.HourlyStat, error)
	GetDailyTotals(ctx context.Context, limit int64) ([]*model.DailyTotal, error)
	GetHourlyStats(ctx context.Context, limit int64) ([]*model.HourlyStat, error)
	GetHourlyStatsRange(ctx context.Context, start, end time.Time) ([]*model.HourlyStat, error)
	GetOverview(ctx context.Context) (*StatsOverview, error)
}

type statsServiceImpl struct {
	dailyRepo      repository.DailyTotalRepo
	hourlyRepo     repository.HourlyStatRepo
	viewerRepo     repository.ViewerRepo
	screenshotRepo repository.ScreenshotRepo
}

func NewStatsService(
	dailyRepo repository.DailyTotalRepo,
	hourlyRepo repository.HourlyStatRepo,
	viewerRepo repository.ViewerRepo,
	screenshotRepo repository.ScreenshotRepo,
) StatsService {
	return &statsServiceImpl{
		dailyRepo:      dailyRepo,
		hourlyRepo:     hourlyRepo,
		viewerRepo:     viewerRepo,
		screenshotRepo: screenshotRepo,
	}
}

func (s *statsServiceImpl) RecordDailyTotal(ctx context.Context, date string, absoluteTotal int) (*model.DailyTotal, error) {
	prior, err := s.dailyRepo.LatestWithAbsoluteBefore(ctx, date)
	if err != nil {
		return nil, err
	}

	// 首条记录视为全量增量
	increment := absoluteTotal
	if prior != nil && prior.AbsoluteTotal != nil {
		increment = absoluteTotal - *prior.AbsoluteTotal
	}

	abs := absoluteTotal
	total := &model.DailyTotal{
		Date:           date,
		IncrementTotal: increment,
		AbsoluteTotal:  &abs,
		UpdatedAt:      time.Now().UTC(),
	}
	if err = s.dailyRepo.Upsert(ctx, total); err != nil {
		return nil, err
	}
	return total, nil
}

func (s *statsServiceImpl) RecordHourlyStat(ctx context.Context, ts time.Time, absoluteTotal int) (*model.HourlyStat, error) {
	hour := model.HourBucket(ts)

	previous, err := s.hourlyRepo.Get(ctx, hour.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	previousTotal := 0
	if previous != nil {
		previousTotal = previous.TotalViewers
	}

	// 小时增量对外呈现为"较上小时的增长"，来源计数器偶发回退时静默吞掉而不展示负数
	increase := absoluteTotal - previousTotal
	if increase < 0 {
		increase = 0
	}

	stat := &model.HourlyStat{
		Hour:           hour,
		TotalViewers:   absoluteTotal,
		ViewerIncrease: increase,
		UpdatedAt:      time.Now().UTC(),
	}
	if err = s.hourlyRepo.Upsert(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *statsServiceImpl) GetDailyTotals(ctx context.Context, limit int64) ([]*model.DailyTotal, error) {
	return s.dailyRepo.List(ctx, limit)
}

func (s *statsServiceImpl) GetHourlyStats(ctx context.Context, limit int64) ([]*model.HourlyStat, error) {
	return s.hourlyRepo.ListLatestAsc(ctx, limit)
}

func (s *statsServiceImpl) GetHourlyStatsRange(ctx context.Context, start, end time.Time) ([]*model.HourlyStat, error) {
	return s.hourlyRepo.ListRange(ctx, start, end)
}

func (s *statsServiceImpl) GetOverview(ctx context.Context) (*StatsOverview, error) {
	totalRecords, err := s.viewerRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	freeCount, err := s.viewerRepo.CountByCategory(ctx, model.CategoryFree)
	if err != nil {
		return nil, err
	}
	dailyTotals, err := s.dailyRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	screenshots, err := s.screenshotRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	overview := &StatsOverview{
		TotalViewerRecords: totalRecords,
		FreeViewerCount:    freeCount,
		PremiumViewerCount: totalRecords - freeCount,
		TotalDailyRecords:  int64(len(dailyTotals)),
		TotalScreenshots:   screenshots,
	}

	latest, err := s.dailyRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.AbsoluteTotal != nil {
		overview.TotalProfileViews = *latest.AbsoluteTotal
	}
	return overview, nil
}
