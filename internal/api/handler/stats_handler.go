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

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

func (s *StatsHandler) Overview(c *gin.Context) {
	overview, err := s.statsSvc.GetOverview(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

func (s *StatsHandler) DailyTotals(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	totals, err := s.statsSvc.GetDailyTotals(c, int64(query.Limit))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.DailyTotalDTO, 0, len(totals))
	if err = copier.Copy(&list, &totals); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// HourlyStats 无参数时返回最近的快照（升序），带 start/end 时返回区间
func (s *StatsHandler) HourlyStats(c *gin.Context) {
	var query dto.HourlyStatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	stats, err := s.queryHourly(c, query)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.HourlyStatDTO, 0, len(stats))
	if err = copier.Copy(&list, &stats); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StatsHandler) queryHourly(c *gin.Context, query dto.HourlyStatsQuery) ([]*model.HourlyStat, error) {
	if query.Start == "" && query.End == "" {
		return s.statsSvc.GetHourlyStats(c, int64(query.Limit))
	}

	start, err := time.Parse(time.RFC3339, query.Start)
	if err != nil {
		return nil, service.ErrParamInvalid
	}
	end, err := time.Parse(time.RFC3339, query.End)
	if err != nil {
		return nil, service.ErrParamInvalid
	}
	return s.statsSvc.GetHourlyStatsRange(c, start, end)
}
