package model

import (
	"time"
)

// HourlyStat 小时级访客快照，按 hour 键 upsert
// ViewerIncrease 下限为 0：来源计数器偶发回退时小时增量不展示负数
type HourlyStat struct {
	ID             string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Hour           time.Time `bson:"hour" json:"hour"` // UTC 整点桶
	TotalViewers   int       `bson:"total_viewers" json:"total_viewers"`
	ViewerIncrease int       `bson:"viewer_increase" json:"viewer_increase"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// HourBucket 将时间戳归一化到所属 UTC 整点
func HourBucket(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}
