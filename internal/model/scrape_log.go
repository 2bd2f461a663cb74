package model

import (
	"time"
)

// TriggerKind 抓取触发方式
type TriggerKind string

const (
	TriggerManual    TriggerKind = "manual"
	TriggerAutomatic TriggerKind = "automatic"
)

// ScrapeStatus 抓取周期状态
type ScrapeStatus string

const (
	ScrapeStarted   ScrapeStatus = "started"
	ScrapeCompleted ScrapeStatus = "completed"
	ScrapeFailed    ScrapeStatus = "failed"
)

// ScrapeLog 抓取审计日志，仅追加，写入后不再修改
type ScrapeLog struct {
	ID              string       `bson:"_id,omitempty" json:"_id,omitempty"`
	Timestamp       time.Time    `bson:"timestamp" json:"timestamp"`
	Trigger         TriggerKind  `bson:"trigger" json:"trigger"`
	Status          ScrapeStatus `bson:"status" json:"status"`
	DurationSeconds float64      `bson:"duration_seconds" json:"duration_seconds"`
	TotalViewers    int          `bson:"total_viewers" json:"total_viewers"`
	FreeViewers     int          `bson:"free_viewers" json:"free_viewers"`
	ScreenshotTaken bool         `bson:"screenshot_taken" json:"screenshot_taken"`
	ErrorMessage    string       `bson:"error_message,omitempty" json:"error_message,omitempty"`
}
