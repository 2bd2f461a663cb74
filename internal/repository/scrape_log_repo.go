package repository

import (
	"Linkview/internal/model"
	"Linkview/internal/storage"
	"context"

	"github.com/pkg/errors"
)

type ScrapeLogRepo interface {
	// Insert 追加一条审计日志，日志写入后不再修改
	Insert(ctx context.Context, entry *model.ScrapeLog) error
	ListRecent(ctx context.Context, limit int64) ([]*model.ScrapeLog, error)
	// LatestCompleted 取最近一次成功完成的记录，未命中返回 nil
	LatestCompleted(ctx context.Context) (*model.ScrapeLog, error)
}

type scrapeLogRepoImpl struct {
	store storage.Store
}

func NewScrapeLogRepo(store storage.Store) ScrapeLogRepo {
	return &scrapeLogRepoImpl{store: store}
}

func (s *scrapeLogRepoImpl) Insert(ctx context.Context, entry *model.ScrapeLog) error {
	id, err := s.store.InsertOne(ctx, model.CollectionScrapeLogs, entry)
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

func (s *scrapeLogRepoImpl) ListRecent(ctx context.Context, limit int64) ([]*model.ScrapeLog, error) {
	var logs []*model.ScrapeLog
	err := s.store.Find(ctx, model.CollectionScrapeLogs, storage.Query{
		Sort:  []storage.Sort{{Field: "timestamp", Desc: true}},
		Limit: limit,
	}, &logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *scrapeLogRepoImpl) LatestCompleted(ctx context.Context) (*model.ScrapeLog, error) {
	var entry model.ScrapeLog
	err := s.store.FindOne(ctx, model.CollectionScrapeLogs, storage.Query{
		Filter: storage.Filter{storage.Eq("status", string(model.ScrapeCompleted))},
		Sort:   []storage.Sort{{Field: "timestamp", Desc: true}},
	}, &entry)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
