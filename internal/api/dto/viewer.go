package dto

import "time"

// ViewerListQuery 访客列表查询参数
type ViewerListQuery struct {
	Limit int  `form:"limit" binding:"omitempty,min=1,max=500"`
	Free  bool `form:"free"`
}

// ViewerDTO 访客记录返回体
type ViewerDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Headline    string    `json:"headline"`
	Company     string    `json:"company"`
	Category    string    `json:"category"`
	ViewedAgo   string    `json:"viewed_ago"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}
