package dto

import "time"

// ListQuery 通用条数限制参数
type ListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// HourlyStatsQuery 小时快照查询参数，start/end 为 RFC3339 时间区间
type HourlyStatsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// DailyTotalDTO 日汇总返回体
type DailyTotalDTO struct {
	Date           string    `json:"date"`
	IncrementTotal int       `json:"increment_total"`
	AbsoluteTotal  *int      `json:"absolute_total"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HourlyStatDTO 小时快照返回体
type HourlyStatDTO struct {
	Hour           time.Time `json:"hour"`
	TotalViewers   int       `json:"total_viewers"`
	ViewerIncrease int       `json:"viewer_increase"`
	UpdatedAt      time.Time `json:"updated_at"`
}
