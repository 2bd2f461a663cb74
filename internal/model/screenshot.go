package model

import (
	"time"
)

// Screenshot 抓取页面截图，图像数据以 base64 内联存储
// 与其他集合共用同一存储抽象，Mongo 不可用时随整体降级到本地文件
type Screenshot struct {
	ID            string    `bson:"_id,omitempty" json:"_id,omitempty"`
	Filename      string    `bson:"filename" json:"filename"`
	ContentType   string    `bson:"content_type" json:"content_type"`
	Size          int       `bson:"size" json:"size"`
	ImageData     string    `bson:"image_data" json:"image_data"`
	ThumbnailData string    `bson:"thumbnail_data,omitempty" json:"thumbnail_data,omitempty"`
	CapturedAt    time.Time `bson:"captured_at" json:"captured_at"`
}
