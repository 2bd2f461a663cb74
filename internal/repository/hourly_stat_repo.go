package repository

import (
	"Linkview/internal/model"
	"Linkview/internal/storage"
	"context"
	"time"

	"github.com/pkg/errors"
)

type HourlyStatRepo interface {
	// Get 取指定整点桶的记录，未命中返回 nil
	Get(ctx context.Context, hour time.Time) (*model.HourlyStat, error)
	// Upsert 按 hour 键覆盖写入
	Upsert(ctx context.Context, stat *model.HourlyStat) error
	// ListLatestAsc 取最近 limit 条并按时间升序返回（供图表消费）
	ListLatestAsc(ctx context.Context, limit int64) ([]*model.HourlyStat, error)
	ListRange(ctx context.Context, start, end time.Time) ([]*model.HourlyStat, error)
}

type hourlyStatRepoImpl struct {
	store storage.Store
}

func NewHourlyStatRepo(store storage.Store) HourlyStatRepo {
	return &hourlyStatRepoImpl{store: store}
}

func (s *hourlyStatRepoImpl) Get(ctx context.Context, hour time.Time) (*model.HourlyStat, error) {
	var stat model.HourlyStat
	err := s.store.FindOne(ctx, model.CollectionHourlyStats, storage.Query{
		Filter: storage.Filter{storage.Eq("hour", hour)},
	}, &stat)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *hourlyStatRepoImpl) Upsert(ctx context.Context, stat *model.HourlyStat) error {
	_, err := s.store.UpsertByKey(ctx, model.CollectionHourlyStats,
		storage.Filter{storage.Eq("hour", stat.Hour)}, stat)
	return err
}

func (s *hourlyStatRepoImpl) ListLatestAsc(ctx context.Context, limit int64) ([]*model.HourlyStat, error) {
	var stats []*model.HourlyStat
	err := s.store.Find(ctx, model.CollectionHourlyStats, storage.Query{
		Sort:  []storage.Sort{{Field: "hour", Desc: true}},
		Limit: limit,
	}, &stats)
	if err != nil {
		return nil, err
	}

	// 倒序取最近 N 条后翻转为时间升序
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return stats, nil
}

func (s *hourlyStatRepoImpl) ListRange(ctx context.Context, start, end time.Time) ([]*model.HourlyStat, error) {
	var stats []*model.HourlyStat
	err := s.store.Find(ctx, model.CollectionHourlyStats, storage.Query{
		Filter: storage.Filter{
			storage.Gte("hour", start),
			storage.Lte("hour", end),
		},
		Sort: []storage.Sort{{Field: "hour", Desc: false}},
	}, &stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
