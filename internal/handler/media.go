package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykura/internal/dto"
	"storykura/internal/response"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

func (h Handler) Video(c *gin.Context) {
	var req dto.MediaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("Video ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}

	asset, err := h.Service.AttachMedia(c.Request.Context(), req.Text, req.Mode)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, asset)
}

func (h Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
