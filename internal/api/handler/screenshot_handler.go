package handler

import (
	"Linkview/internal/api/dto"
	"Linkview/internal/pkg/response"
	"Linkview/internal/service"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ScreenshotHandler struct {
	screenshotSvc service.ScreenshotService
}

func NewScreenshotHandler(screenshotSvc service.ScreenshotService) *ScreenshotHandler {
	return &ScreenshotHandler{screenshotSvc: screenshotSvc}
}

// List 只返回元信息，图片本体不进列表响应
func (s *ScreenshotHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	shots, err := s.screenshotSvc.List(c, int64(query.Limit))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.ScreenshotDTO, 0, len(shots))
	for _, shot := range shots {
		list = append(list, &dto.ScreenshotDTO{
			Filename:     shot.Filename,
			ContentType:  shot.ContentType,
			Size:         shot.Size,
			HasThumbnail: shot.ThumbnailData != "",
			CapturedAt:   shot.CapturedAt,
		})
	}
	response.Success(c, list)
}

// Get 按文件名返回图片二进制，?thumbnail=true 时返回缩略图
func (s *ScreenshotHandler) Get(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	shot, err := s.screenshotSvc.GetByFilename(c, filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	encoded := shot.ImageData
	if c.Query("thumbnail") == "true" && shot.ThumbnailData != "" {
		encoded = shot.ThumbnailData
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, shot.ContentType, data)
}
