package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// ReconcileOutcome 单条访客协调结果
type ReconcileOutcome string

const (
	ReconcileSkipped ReconcileOutcome = "skipped"
	ReconcileCreated ReconcileOutcome = "created"
	ReconcileUpdated ReconcileOutcome = "updated"
)

// BatchResult 批量协调计数
type BatchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type ViewerService interface {
	// Reconcile 将一条原始访客数据并入存储：
	// 名称为空则跳过；去重窗口内同名记录就地更新，否则新建
	Reconcile(ctx context.Context, raw model.RawViewer, now time.Time) (ReconcileOutcome, *model.Viewer, error)
	// ReconcileBatch 逐条处理，单条持久化失败不中断其余条目
	ReconcileBatch(ctx context.Context, raws []model.RawViewer, now time.Time) BatchResult
	ListViewers(ctx context.Context, limit int64, freeOnly bool) ([]*model.Viewer, error)
}

type viewerServiceImpl struct {
	viewerRepo  repository.ViewerRepo
	classifier  *Classifier
	dedupWindow time.Duration
}

func NewViewerService(viewerRepo repository.ViewerRepo, classifier *Classifier, dedupWindow time.Duration) ViewerService {
	return &viewerServiceImpl{
		viewerRepo:  viewerRepo,
		classifier:  classifier,
		dedupWindow: dedupWindow,
	}
}

func (s *viewerServiceImpl) Reconcile(ctx context.Context, raw model.RawViewer, now time.Time) (ReconcileOutcome, *model.Viewer, error) {
	name := CleanViewerName(raw.Name)
	if name == "" {
		return ReconcileSkipped, nil, nil
	}

	category := s.classifier.Classify(name)

	since := now.Add(-s.dedupWindow)
	existing, err := s.viewerRepo.FindActiveByName(ctx, name, since)
	if err != nil {
		return "", nil, err
	}

	if existing != nil {
		// 窗口内再次到访：后到的观测覆盖描述字段，first_seen_at 保持不变
		existing.Headline = raw.Headline
		existing.Company = raw.Company
		existing.ViewedAgo = viewedAgoOrUnknown(raw.ViewedAgo)
		existing.Category = category
		existing.LastSeenAt = now

		if err = s.viewerRepo.Upsert(ctx, existing); err != nil {
			return "", nil, err
		}
		return ReconcileUpdated, existing, nil
	}

	viewer := &model.Viewer{
		Name:        name,
		Headline:    raw.Headline,
		Company:     raw.Company,
		Category:    category,
		ViewedAgo:   viewedAgoOrUnknown(raw.ViewedAgo),
		FirstSeenAt: now,
		LastSeenAt:  now,
	}
	if err = s.viewerRepo.Upsert(ctx, viewer); err != nil {
		return "", nil, err
	}
	return ReconcileCreated, viewer, nil
}

func (s *viewerServiceImpl) ReconcileBatch(ctx context.Context, raws []model.RawViewer, now time.Time) BatchResult {
	var result BatchResult
	for _, raw := range raws {
		outcome, _, err := s.Reconcile(ctx, raw, now)
		if err != nil {
			result.Failed++
			log.ErrorContext(ctx, "reconcile viewer failed", "name", raw.Name, "err", err)
			continue
		}
		switch outcome {
		case ReconcileCreated:
			result.Created++
		case ReconcileUpdated:
			result.Updated++
		case ReconcileSkipped:
			result.Skipped++
		}
	}
	return result
}

func (s *viewerServiceImpl) ListViewers(ctx context.Context, limit int64, freeOnly bool) ([]*model.Viewer, error) {
	return s.viewerRepo.List(ctx, limit, freeOnly)
}

// CleanViewerName 去除来源页偶发拼接的 "View X's profile" 后缀并修剪空白
func CleanViewerName(name string) string {
	name = strings.TrimSpace(name)

	if idx := strings.Index(name, "View "); idx > 0 {
		suffix := name[idx:]
		if strings.HasSuffix(suffix, "profile") || strings.HasSuffix(suffix, "profile.") {
			name = strings.TrimSpace(name[:idx])
		}
	}
	return name
}

func viewedAgoOrUnknown(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unknown"
	}
	return label
}
