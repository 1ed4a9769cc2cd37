package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storykura/internal/session"
	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

// CreateSession breaks text down and stores the result as a new editing session.
func (s *Service) CreateSession(ctx context.Context, text string, mode types.MediaMode, voice types.VoiceOptions) (session.Session, error) {
	if mode == "" {
		mode = types.MediaModeSearch
	}
	if !mode.Valid() {
		return session.Session{}, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, "不支持的模式 Unsupported mode", string(mode), nil)
	}

	res, err := s.Breakdown(ctx, text)
	if err != nil {
		return session.Session{}, err
	}
	sess := s.Sessions.Create(mode, voice, res.Segments)
	log.GetLogger().Info("创建会话", zap.String("session", sess.Id), zap.Int("segments", len(sess.Segments)), zap.String("source", res.Source))
	return sess, nil
}

// SynthesizeSegment generates audio for a segment's lecture text with the session voice.
func (s *Service) SynthesizeSegment(ctx context.Context, sessionId, segmentId string) (session.Session, error) {
	return s.runSegment(ctx, sessionId, segmentId, session.KindAudio, func(ctx context.Context, sess session.Session, seg types.ScriptSegment) (func(*types.ScriptSegment), error) {
		audioUrl, err := s.SynthesizeSpeech(ctx, seg.LectureText, sess.Voice)
		if err != nil {
			return nil, err
		}
		return func(target *types.ScriptSegment) {
			target.AudioUrl = audioUrl
		}, nil
	})
}

// AttachSegmentMedia attaches media for a segment's original text using the session mode.
func (s *Service) AttachSegmentMedia(ctx context.Context, sessionId, segmentId string) (session.Session, error) {
	return s.runSegment(ctx, sessionId, segmentId, session.KindMedia, func(ctx context.Context, sess session.Session, seg types.ScriptSegment) (func(*types.ScriptSegment), error) {
		asset, err := s.AttachMedia(ctx, seg.OriginalText, sess.Mode)
		if err != nil {
			return nil, err
		}
		return func(target *types.ScriptSegment) {
			target.Media = asset
		}, nil
	})
}

type segmentOp func(ctx context.Context, sess session.Session, seg types.ScriptSegment) (func(*types.ScriptSegment), error)

// runSegment wraps op in a ticket so that only the newest request per segment and kind lands.
func (s *Service) runSegment(ctx context.Context, sessionId, segmentId string, kind session.Kind, op segmentOp) (session.Session, error) {
	sess, err := s.Sessions.Get(sessionId)
	if err != nil {
		return session.Session{}, err
	}
	seg, ok := sess.Segment(segmentId)
	if !ok {
		return session.Session{}, apperrors.WrapWithDetail(apperrors.CodeNotFound, "片段不存在 Segment not found", segmentId, nil)
	}

	ticket, opCtx, err := s.Sessions.Begin(ctx, sessionId, segmentId, kind)
	if err != nil {
		return session.Session{}, err
	}

	apply, opErr := op(opCtx, sess, seg)
	if opErr != nil {
		updated, err := s.Sessions.Fail(ticket, opErr)
		if err != nil {
			return session.Session{}, err
		}
		return updated, opErr
	}
	return s.Sessions.Complete(ticket, apply)
}

// SynthesizeAll runs SynthesizeSegment for every segment, at most MaxConcurrency at a time.
// A failing segment only marks itself; onlyMissing skips segments that already have audio.
func (s *Service) SynthesizeAll(ctx context.Context, sessionId string, onlyMissing bool) (session.Session, error) {
	sess, err := s.Sessions.Get(sessionId)
	if err != nil {
		return session.Session{}, err
	}

	limit := s.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for _, seg := range sess.Segments {
		if onlyMissing && seg.AudioUrl != "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.SynthesizeSegment(ctx, sessionId, seg.Id); err != nil && !errors.Is(err, session.ErrStale) {
				log.GetLogger().Warn("片段语音生成失败", zap.String("session", sessionId), zap.String("segment", seg.Id), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return s.Sessions.Get(sessionId)
}
