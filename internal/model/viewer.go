package model

import (
	"time"
)

// Category 访客分类：free 表示来源页展示了真实姓名，premium 表示仅展示匿名描述
type Category string

const (
	CategoryFree    Category = "free"
	CategoryPremium Category = "premium"
)

// Viewer 访客记录
// 去重键为 name 的精确匹配：去重窗口内同名到访仅更新 last_seen_at，窗口过期后新建记录
type Viewer struct {
	ID          string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string    `bson:"name" json:"name"`                             // 来源页展示的原始名称（已去除重复的 "View X's profile" 后缀）
	Headline    string    `bson:"headline,omitempty" json:"headline,omitempty"` // 头衔描述
	Company     string    `bson:"company,omitempty" json:"company,omitempty"`
	Category    Category  `bson:"category" json:"category"`
	ViewedAgo   string    `bson:"viewed_ago,omitempty" json:"viewed_ago,omitempty"` // 来源页的相对时间标签，如 "2 hours ago"，未知时为 "unknown"
	FirstSeenAt time.Time `bson:"first_seen_at" json:"first_seen_at"`
	LastSeenAt  time.Time `bson:"last_seen_at" json:"last_seen_at"`
}

// RawViewer 抓取器产出的单条原始访客数据
type RawViewer struct {
	Name      string `json:"name"`
	Headline  string `json:"headline,omitempty"`
	Company   string `json:"company,omitempty"`
	ViewedAgo string `json:"viewed_ago,omitempty"`
}

// ScrapeResult 一次抓取周期的产出
type ScrapeResult struct {
	TotalViewers int         `json:"total_viewers"` // 来源页展示的累计访客总数，0 表示未能解析
	Viewers      []RawViewer `json:"viewers"`
	Screenshot   []byte      `json:"-"` // 全页截图 PNG，可能为空
}
