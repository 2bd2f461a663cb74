package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"bytes"
	"context"
	"encoding/base64"
	log "log/slog"
	"time"

	"github.com/disintegration/imaging"
)

const thumbnailWidth = 480

type ScreenshotService interface {
	// SavePNG 持久化一张全页截图，同时生成内联缩略图
	SavePNG(ctx context.Context, png []byte, capturedAt time.Time) (*model.Screenshot, error)
	List(ctx context.Context, limit int64) ([]*model.Screenshot, error)
	GetByFilename(ctx context.Context, filename string) (*model.Screenshot, error)
}

type screenshotServiceImpl struct {
	screenshotRepo repository.ScreenshotRepo
}

func NewScreenshotService(screenshotRepo repository.ScreenshotRepo) ScreenshotService {
	return &screenshotServiceImpl{screenshotRepo: screenshotRepo}
}

func (s *screenshotServiceImpl) SavePNG(ctx context.Context, png []byte, capturedAt time.Time) (*model.Screenshot, error) {
	shot := &model.Screenshot{
		Filename:    "profile-views-" + capturedAt.UTC().Format("20060102-150405") + ".png",
		ContentType: "image/png",
		Size:        len(png),
		ImageData:   base64.StdEncoding.EncodeToString(png),
		CapturedAt:  capturedAt.UTC(),
	}

	// 缩略图失败不阻塞原图入库
	if thumb, err := makeThumbnail(png); err != nil {
		log.WarnContext(ctx, "generate screenshot thumbnail failed", "err", err)
	} else {
		shot.ThumbnailData = base64.StdEncoding.EncodeToString(thumb)
	}

	if err := s.screenshotRepo.Insert(ctx, shot); err != nil {
		return nil, err
	}
	return shot, nil
}

func (s *screenshotServiceImpl) List(ctx context.Context, limit int64) ([]*model.Screenshot, error) {
	return s.screenshotRepo.ListRecent(ctx, limit)
}

func (s *screenshotServiceImpl) GetByFilename(ctx context.Context, filename string) (*model.Screenshot, error) {
	shot, err := s.screenshotRepo.GetByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if shot == nil {
		return nil, ErrScreenshotNotFound
	}
	return shot, nil
}

func makeThumbnail(png []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
