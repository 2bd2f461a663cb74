package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrScrapeInProgress   = errors.New("抓取任务正在运行中")
	ErrSessionExpired     = errors.New("会话已过期，请更新 Cookie")
	ErrScreenshotNotFound = errors.New("截图不存在")
	ErrScheduleDisabled   = errors.New("定时抓取已停用")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrScrapeInProgress:   Conflict,
	ErrSessionExpired:     InternalServerError,
	ErrScreenshotNotFound: NotFound,
	ErrScheduleDisabled:   BadRequest,
	UnExpectedError:       InternalServerError,
}
