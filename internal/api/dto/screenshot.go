package dto

import "time"

// ScreenshotDTO 截图元信息返回体，图片本体经 /api/screenshots/:filename 获取
type ScreenshotDTO struct {
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int       `json:"size"`
	HasThumbnail bool      `json:"has_thumbnail"`
	CapturedAt   time.Time `json:"captured_at"`
}
