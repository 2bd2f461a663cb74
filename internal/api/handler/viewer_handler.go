package handler

import (
	"Linkview/internal/api/dto"
	"Linkview/internal/pkg/response"
	"Linkview/internal/service"
	"encoding/csv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type ViewerHandler struct {
	viewerSvc service.ViewerService
}

func NewViewerHandler(viewerSvc service.ViewerService) *ViewerHandler {
	return &ViewerHandler{viewerSvc: viewerSvc}
}

func (s *ViewerHandler) List(c *gin.Context) {
	var query dto.ViewerListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	viewers, err := s.viewerSvc.ListViewers(c, int64(query.Limit), query.Free)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ViewerDTO, 0, len(viewers))
	if err = copier.Copy(&list, &viewers); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ExportCSV 导出全量访客记录
func (s *ViewerHandler) ExportCSV(c *gin.Context) {
	viewers, err := s.viewerSvc.ListViewers(c, 0, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="viewers.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"name", "headline", "company", "category", "viewed_ago", "first_seen_at", "last_seen_at"})
	for _, v := range viewers {
		_ = w.Write([]string{
			v.Name,
			v.Headline,
			v.Company,
			string(v.Category),
			v.ViewedAgo,
			v.FirstSeenAt.Format(time.RFC3339),
			v.LastSeenAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}
