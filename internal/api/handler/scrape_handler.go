package handler

import (
	"Linkview/internal/api/dto"
	"Linkview/internal/model"
	"Linkview/internal/pkg/response"
	"Linkview/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type ScrapeHandler struct {
	scrapeSvc service.ScrapeService
	cadence   service.Cadence
}

func NewScrapeHandler(scrapeSvc service.ScrapeService, cadence service.Cadence) *ScrapeHandler {
	return &ScrapeHandler{scrapeSvc: scrapeSvc, cadence: cadence}
}

// Trigger 手动触发一次抓取周期，同步等待完成；在途时返回冲突业务码
func (s *ScrapeHandler) Trigger(c *gin.Context) {
	summary, err := s.scrapeSvc.Trigger(c, model.TriggerManual)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

func (s *ScrapeHandler) Logs(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	limit := int64(query.Limit)
	if limit == 0 {
		limit = 50
	}

	logs, err := s.scrapeSvc.ListLogs(c, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ScrapeLogDTO, 0, len(logs))
	if err = copier.Copy(&list, &logs); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// LastLog 最近一次成功完成的抓取记录，尚无成功记录时返回空
func (s *ScrapeHandler) LastLog(c *gin.Context) {
	last, err := s.scrapeSvc.LastCompleted(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if last == nil {
		response.Success(c, nil)
		return
	}

	out := &dto.ScrapeLogDTO{}
	if err = copier.Copy(out, last); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *ScrapeHandler) NextRun(c *gin.Context) {
	next, ok := s.scrapeSvc.NextScheduledRun(time.Now())
	if !ok {
		response.Error(c, service.ErrScheduleDisabled)
		return
	}
	response.Success(c, dto.NextRunDTO{
		Cadence: string(s.cadence),
		NextRun: next,
	})
}
