package service

import (
	"time"
)

// Cadence 定时抓取节奏
type Cadence string

const (
	CadenceHourly   Cadence = "hourly"
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceDisabled Cadence = "disabled"
)

// NextRun 由当前时间与节奏计算下一次计划抓取时间，纯函数，无持久化的调度状态
// disabled 返回 false；未知节奏按 hourly 处理
func NextRun(now time.Time, cadence Cadence) (time.Time, bool) {
	switch cadence {
	case CadenceDisabled:
		return time.Time{}, false
	case CadenceDaily:
		next := midnight(now).AddDate(0, 0, 1)
		return next, true
	case CadenceWeekly:
		// 下一个周日零点
		days := 7 - int(now.Weekday())
		next := midnight(now).AddDate(0, 0, days)
		return next, true
	default:
		// hourly：下一个整点
		next := now.Truncate(time.Hour).Add(time.Hour)
		return next, true
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
