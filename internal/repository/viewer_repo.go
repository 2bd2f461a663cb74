package repository

import (
	"Linkview/internal/model"
	"Linkview/internal/storage"
	"context"
	"time"

	"github.com/pkg/errors"
)

type ViewerRepo interface {
	// FindActiveByName 按名称精确匹配查找去重窗口内的既有记录，未命中返回 nil
	FindActiveByName(ctx context.Context, name string, since time.Time) (*model.Viewer, error)
	Upsert(ctx context.Context, viewer *model.Viewer) error
	List(ctx context.Context, limit int64, freeOnly bool) ([]*model.Viewer, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category model.Category) (int64, error)
}

type viewerRepoImpl struct {
	store storage.Store
}

func NewViewerRepo(store storage.Store) ViewerRepo {
	return &viewerRepoImpl{store: store}
}

func (s *viewerRepoImpl) FindActiveByName(ctx context.Context, name string, since time.Time) (*model.Viewer, error) {
	var viewer model.Viewer
	err := s.store.FindOne(ctx, model.CollectionViewers, storage.Query{
		Filter: storage.Filter{
			storage.Eq("name", name),
			storage.Gte("last_seen_at", since),
		},
		Sort: []storage.Sort{{Field: "last_seen_at", Desc: true}},
	}, &viewer)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &viewer, nil
}

func (s *viewerRepoImpl) Upsert(ctx context.Context, viewer *model.Viewer) error {
	if viewer.ID == "" {
		id, err := s.store.InsertOne(ctx, model.CollectionViewers, viewer)
		if err != nil {
			return err
		}
		viewer.ID = id
		return nil
	}

	_, err := s.store.UpsertByKey(ctx, model.CollectionViewers,
		storage.Filter{storage.Eq("_id", viewer.ID)}, viewer)
	return err
}

func (s *viewerRepoImpl) List(ctx context.Context, limit int64, freeOnly bool) ([]*model.Viewer, error) {
	var filter storage.Filter
	if freeOnly {
		filter = append(filter, storage.Eq("category", string(model.CategoryFree)))
	}

	var viewers []*model.Viewer
	err := s.store.Find(ctx, model.CollectionViewers, storage.Query{
		Filter: filter,
		Sort:   []storage.Sort{{Field: "last_seen_at", Desc: true}},
		Limit:  limit,
	}, &viewers)
	if err != nil {
		return nil, err
	}
	return viewers, nil
}

func (s *viewerRepoImpl) CountAll(ctx context.Context) (int64, error) {
	return s.store.Count(ctx, model.CollectionViewers, nil)
}

func (s *viewerRepoImpl) CountByCategory(ctx context.Context, category model.Category) (int64, error) {
	return s.store.Count(ctx, model.CollectionViewers,
		storage.Filter{storage.Eq("category", string(category))})
}
