package repository

import (
	"Linkview/internal/model"
	"Linkview/internal/storage"
	"context"

	"github.com/pkg/errors"
)

type ScreenshotRepo interface {
	Insert(ctx context.Context, shot *model.Screenshot) error
	ListRecent(ctx context.Context, limit int64) ([]*model.Screenshot, error)
	// GetByFilename 未命中返回 nil
	GetByFilename(ctx context.Context, filename string) (*model.Screenshot, error)
	Count(ctx context.Context) (int64, error)
}

type screenshotRepoImpl struct {
	store storage.Store
}

func NewScreenshotRepo(store storage.Store) ScreenshotRepo {
	return &screenshotRepoImpl{store: store}
}

func (s *screenshotRepoImpl) Insert(ctx context.Context, shot *model.Screenshot) error {
	id, err := s.store.InsertOne(ctx, model.CollectionScreenshots, shot)
	if err != nil {
		return err
	}
	shot.ID = id
	return nil
}

func (s *screenshotRepoImpl) ListRecent(ctx context.Context, limit int64) ([]*model.Screenshot, error) {
	var shots []*model.Screenshot
	err := s.store.Find(ctx, model.CollectionScreenshots, storage.Query{
		Sort:  []storage.Sort{{Field: "captured_at", Desc: true}},
		Limit: limit,
	}, &shots)
	if err != nil {
		return nil, err
	}
	return shots, nil
}

func (s *screenshotRepoImpl) GetByFilename(ctx context.Context, filename string) (*model.Screenshot, error) {
	var shot model.Screenshot
	err := s.store.FindOne(ctx, model.CollectionScreenshots, storage.Query{
		Filter: storage.Filter{storage.Eq("filename", filename)},
	}, &shot)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shot, nil
}

func (s *screenshotRepoImpl) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx, model.CollectionScreenshots, nil)
}
