package repository

import (
	"Linkview/internal/model"
	"Linkview/internal/storage"
	"context"

	"github.com/pkg/errors"
)

type DailyTotalRepo interface {
	// Upsert 按 date 键覆盖写入
	Upsert(ctx context.Context, total *model.DailyTotal) error
	Get(ctx context.Context, date string) (*model.DailyTotal, error)
	// LatestWithAbsoluteBefore 取严格早于 date 且 absolute_total 已知的最近一条记录，
	// 允许日期空洞，未命中返回 nil
	LatestWithAbsoluteBefore(ctx context.Context, date string) (*model.DailyTotal, error)
	// Latest 取最新一条记录，未命中返回 nil
	Latest(ctx context.Context) (*model.DailyTotal, error)
	List(ctx context.Context, limit int64) ([]*model.DailyTotal, error)
}

type dailyTotalRepoImpl struct {
	store storage.Store
}

func NewDailyTotalRepo(store storage.Store) DailyTotalRepo {
	return &dailyTotalRepoImpl{store: store}
}

func (s *dailyTotalRepoImpl) Upsert(ctx context.Context, total *model.DailyTotal) error {
	_, err := s.store.UpsertByKey(ctx, model.CollectionDailyTotals,
		storage.Filter{storage.Eq("date", total.Date)}, total)
	return err
}

func (s *dailyTotalRepoImpl) Get(ctx context.Context, date string) (*model.DailyTotal, error) {
	var total model.DailyTotal
	err := s.store.FindOne(ctx, model.CollectionDailyTotals, storage.Query{
		Filter: storage.Filter{storage.Eq("date", date)},
	}, &total)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &total, nil
}

func (s *dailyTotalRepoImpl) LatestWithAbsoluteBefore(ctx context.Context, date string) (*model.DailyTotal, error) {
	var total model.DailyTotal
	err := s.store.FindOne(ctx, model.CollectionDailyTotals, storage.Query{
		Filter: storage.Filter{
			storage.Lt("date", date),
			storage.Exists("absolute_total", true),
		},
		Sort: []storage.Sort{{Field: "date", Desc: true}},
	}, &total)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &total, nil
}

func (s *dailyTotalRepoImpl) Latest(ctx context.Context) (*model.DailyTotal, error) {
	var total model.DailyTotal
	err := s.store.FindOne(ctx, model.CollectionDailyTotals, storage.Query{
		Sort: []storage.Sort{{Field: "date", Desc: true}},
	}, &total)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &total, nil
}

func (s *dailyTotalRepoImpl) List(ctx context.Context, limit int64) ([]*model.DailyTotal, error) {
	var totals []*model.DailyTotal
	err := s.store.Find(ctx, model.CollectionDailyTotals, storage.Query{
		Sort:  []storage.Sort{{Field: "date", Desc: true}},
		Limit: limit,
	}, &totals)
	if err != nil {
		return nil, err
	}
	return totals, nil
}
