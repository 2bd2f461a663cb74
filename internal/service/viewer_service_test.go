package service

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"Linkview/internal/storage"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupViewerService(t *testing.T) (ViewerService, repository.ViewerRepo) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	repo := repository.NewViewerRepo(store)
	svc := NewViewerService(repo, NewClassifier(nil), 7*24*time.Hour)
	return svc, repo
}

func TestReconcileCreatesThenUpdatesWithinWindow(t *testing.T) {
	svc, repo := setupViewerService(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	raw := model.RawViewer{Name: "John Doe", Headline: "Engineer at Acme", Company: "Acme", ViewedAgo: "2h ago"}

	outcome, created, err := svc.Reconcile(ctx, raw, now)
	require.NoError(t, err)
	assert.Equal(t, ReconcileCreated, outcome)
	assert.Equal(t, model.CategoryFree, created.Category)
	assert.Equal(t, now, created.FirstSeenAt)

	// 窗口内同名再次出现：就地更新，不产生第二条记录
	later := now.Add(26 * time.Hour)
	raw.Headline = "Senior Engineer at Acme"
	outcome, updated, err := svc.Reconcile(ctx, raw, later)
	require.NoError(t, err)
	assert.Equal(t, ReconcileUpdated, outcome)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Engineer at Acme", updated.Headline)
	assert.Equal(t, later, updated.LastSeenAt)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindActiveByName(ctx, "John Doe", later.Add(-time.Hour))
	require.NoError(t, err)
	require.NotNil(t, stored)
	// first_seen_at 保持首次观测时间
	assert.True(t, stored.FirstSeenAt.Equal(now))
}

func TestReconcileClearsDroppedDescriptionFields(t *testing.T) {
	svc, repo := setupViewerService(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	_, _, err := svc.Reconcile(ctx, model.RawViewer{Name: "John Doe", Headline: "Engineer at Acme", Company: "Acme"}, now)
	require.NoError(t, err)

	// 后到的观测不再携带头衔与公司：覆盖后不得残留前值
	outcome, _, err := svc.Reconcile(ctx, model.RawViewer{Name: "John Doe"}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ReconcileUpdated, outcome)

	stored, err := repo.FindActiveByName(ctx, "John Doe", now)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.Headline)
	assert.Empty(t, stored.Company)
}

func TestReconcileCreatesOutsideWindow(t *testing.T) {
	svc, repo := setupViewerService(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	raw := model.RawViewer{Name: "Jane Smith", Headline: "Designer"}

	outcome, _, err := svc.Reconcile(ctx, raw, now)
	require.NoError(t, err)
	assert.Equal(t, ReconcileCreated, outcome)

	// 超过去重窗口：视为新来访
	outcome, _, err = svc.Reconcile(ctx, raw, now.Add(8*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ReconcileCreated, outcome)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReconcileSkipsBlankName(t *testing.T) {
	svc, repo := setupViewerService(t)
	ctx := context.Background()

	outcome, viewer, err := svc.Reconcile(ctx, model.RawViewer{Name: "   "}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, ReconcileSkipped, outcome)
	assert.Nil(t, viewer)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestReconcileNormalizesViewedAgo(t *testing.T) {
	svc, _ := setupViewerService(t)

	_, viewer, err := svc.Reconcile(context.Background(), model.RawViewer{Name: "Alice Johnson"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "unknown", viewer.ViewedAgo)
}

func TestReconcileBatchMixedOutcomes(t *testing.T) {
	svc, _ := setupViewerService(t)
	ctx := context.Background()
	now := time.Now()

	raws := []model.RawViewer{
		{Name: "Bob Brown"},
		{Name: "Someone at Google"},
		{Name: ""},
		{Name: "Bob Brown"},
	}

	result := svc.ReconcileBatch(ctx, raws, now)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
}

func TestCleanViewerName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "John Doe", "John Doe"},
		{"whitespace", "  John Doe  ", "John Doe"},
		{"duplicated suffix", "John DoeView John Doe's profile", "John Doe"},
		{"suffix with period", "Jane SmithView Jane Smith's profile.", "Jane Smith"},
		{"view as name prefix untouched", "View Askew Productions", "View Askew Productions"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanViewerName(tt.in))
		})
	}
}
