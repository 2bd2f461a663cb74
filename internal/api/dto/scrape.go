package dto

import "time"

// ScrapeLogDTO 抓取审计日志返回体
type ScrapeLogDTO struct {
	Timestamp       time.Time `json:"timestamp"`
	Trigger         string    `json:"trigger"`
	Status          string    `json:"status"`
	DurationSeconds float64   `json:"duration_seconds"`
	TotalViewers    int       `json:"total_viewers"`
	FreeViewers     int       `json:"free_viewers"`
	ScreenshotTaken bool      `json:"screenshot_taken"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// NextRunDTO 下一次计划抓取时间
type NextRunDTO struct {
	Cadence string    `json:"cadence"`
	NextRun time.Time `json:"next_run"`
}
