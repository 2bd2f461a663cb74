package model

import (
	"time"
)

// DailyTotal 每日访客汇总，按 date 键 upsert（同日多次抓取后写覆盖前写）
type DailyTotal struct {
	ID             string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Date           string    `bson:"date" json:"date"`                       // YYYY-MM-DD
	IncrementTotal int       `bson:"increment_total" json:"increment_total"` // 相对最近一条更早记录的增量，来源计数器回退时可为负
	AbsoluteTotal  *int      `bson:"absolute_total" json:"absolute_total"`   // 来源页展示的累计总数，未知时为 null
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

const DateLayout = "2006-01-02"

// DateOf 取时间对应的日汇总键
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
