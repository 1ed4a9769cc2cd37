package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykura/internal/dto"
	"storykura/internal/response"
	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

func (h Handler) Speech(c *gin.Context) {
	var req dto.SpeechReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("Speech ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}

	audioUrl, err := h.Service.SynthesizeSpeech(c.Request.Context(), req.Text, types.VoiceOptions{
		Provider: req.Provider,
		Model:    req.VoiceModel,
		Voice:    req.VoiceStyle,
	})
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, dto.SpeechResData{AudioUrl: audioUrl})
}
