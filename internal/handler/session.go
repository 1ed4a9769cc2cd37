package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"storykura/internal/dto"
	"storykura/internal/response"
	"storykura/internal/session"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

func bindError(c *gin.Context, name string, err error) {
	log.GetLogger().Error(name+" ShouldBindJSON err", zap.Error(err))
	response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "参数错误 Invalid parameters", err))
}

func (h Handler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "CreateSession", err)
		return
	}

	sess, err := h.Service.CreateSession(c.Request.Context(), req.Text, req.Mode, req.Voice)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

func (h Handler) ListSessions(c *gin.Context) {
	sessions := h.Service.Sessions.List()
	response.Success(c, dto.ListSessionsResData{
		Sessions: lo.Map(sessions, func(s session.Session, _ int) dto.SessionSummary {
			return dto.SessionSummary{
				Id:           s.Id,
				Version:      s.Version,
				Mode:         s.Mode,
				SegmentCount: len(s.Segments),
				CreatedAt:    s.CreatedAt.Unix(),
				UpdatedAt:    s.UpdatedAt.Unix(),
			}
		}),
	})
}

func (h Handler) GetSession(c *gin.Context) {
	sess, err := h.Service.Sessions.Get(c.Param("sessionId"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

func (h Handler) DeleteSession(c *gin.Context) {
	sessionId := c.Param("sessionId")
	if err := h.Service.Sessions.Delete(sessionId); err != nil {
		response.ErrorResponse(c, err)
		return
	}
	log.GetLogger().Info("删除会话", zap.String("session", sessionId))
	response.Success(c, nil)
}

func (h Handler) SetSessionMode(c *gin.Context) {
	var req dto.SetModeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "SetSessionMode", err)
		return
	}

	sess, err := h.Service.Sessions.SetMode(c.Param("sessionId"), req.Mode)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

func (h Handler) EditSegment(c *gin.Context) {
	var req dto.EditSegmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "EditSegment", err)
		return
	}

	sess, err := h.Service.Sessions.EditLecture(c.Param("sessionId"), c.Param("segmentId"), req.LectureText)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

func (h Handler) SynthesizeSegment(c *gin.Context) {
	sess, err := h.Service.SynthesizeSegment(c.Request.Context(), c.Param("sessionId"), c.Param("segmentId"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

func (h Handler) AttachSegmentMedia(c *gin.Context) {
	sess, err := h.Service.AttachSegmentMedia(c.Request.Context(), c.Param("sessionId"), c.Param("segmentId"))
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}

// SynthesizeAll 批量生成语音, ?missing=true 只处理还没有音频的片段
func (h Handler) SynthesizeAll(c *gin.Context) {
	onlyMissing, _ := strconv.ParseBool(c.Query("missing"))
	sess, err := h.Service.SynthesizeAll(c.Request.Context(), c.Param("sessionId"), onlyMissing)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, sess)
}
