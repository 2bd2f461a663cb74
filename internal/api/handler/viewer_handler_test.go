package handler

import (
	"Linkview/internal/model"
	"Linkview/internal/repository"
	"Linkview/internal/service"
	"Linkview/internal/storage"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupViewerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	repo := repository.NewViewerRepo(store)
	svc := service.NewViewerService(repo, service.NewClassifier(nil), 7*24*time.Hour)

	ctx := context.Background()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	_, _, err = svc.Reconcile(ctx, model.RawViewer{Name: "John Doe", Headline: "Engineer", Company: "Acme", ViewedAgo: "2h ago"}, now)
	require.NoError(t, err)
	_, _, err = svc.Reconcile(ctx, model.RawViewer{Name: "Someone at Google"}, now.Add(time.Minute))
	require.NoError(t, err)

	h := NewViewerHandler(svc)
	r := gin.New()
	r.GET("/api/viewers", h.List)
	r.GET("/api/viewers/export", h.ExportCSV)
	return r
}

func TestViewerListEnvelope(t *testing.T) {
	r := setupViewerRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/viewers", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "success", resp.Message)
	require.Len(t, resp.Data, 2)

	// last_seen_at 倒序：后到访的排在前
	var first struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(resp.Data[0], &first))
	assert.Equal(t, "Someone at Google", first.Name)
	assert.Equal(t, "premium", first.Category)
}

func TestViewerListFreeFilter(t *testing.T) {
	r := setupViewerRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/viewers?free=true", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Doe")
	assert.NotContains(t, w.Body.String(), "Someone at Google")
}

func TestViewerListRejectsBadLimit(t *testing.T) {
	r := setupViewerRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/viewers?limit=-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 400, resp.Code)
}

func TestViewerExportCSV(t *testing.T) {
	r := setupViewerRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/viewers/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "headline", "company", "category", "viewed_ago", "first_seen_at", "last_seen_at"}, records[0])
	assert.Equal(t, "John Doe", records[2][0])
	assert.Equal(t, "free", records[2][3])
}
