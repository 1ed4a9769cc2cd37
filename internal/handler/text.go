package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykura/internal/dto"
	"storykura/internal/response"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

func (h Handler) Breakdown(c *gin.Context) {
	var req dto.BreakdownReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("Breakdown ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}

	data, err := h.Service.Breakdown(c.Request.Context(), req.Text)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h Handler) Rewrite(c *gin.Context) {
	var req dto.RewriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("Rewrite ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
		return
	}

	lectureText, err := h.Service.Rewrite(c.Request.Context(), req.Text)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, dto.RewriteResData{LectureText: lectureText})
}
