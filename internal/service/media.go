package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storykura/internal/media"
	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const defaultPlaceholderBaseUrl = "https://via.placeholder.com"

// AttachMedia finds a stock video for text (search mode) or builds a placeholder slide (lecture mode).
func (s *Service) AttachMedia(ctx context.Context, text string, mode types.MediaMode) (*types.MediaAsset, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrEmptyText
	}
	if mode == "" {
		mode = types.MediaModeSearch
	}

	switch mode {
	case types.MediaModeLecture:
		base := s.PlaceholderBaseUrl
		if base == "" {
			base = defaultPlaceholderBaseUrl
		}
		return media.ImageAsset(base, text), nil
	case types.MediaModeSearch:
		return s.searchVideo(ctx, text)
	default:
		return nil, apperrors.WrapWithDetail(apperrors.CodeInvalidParams, "不支持的模式 Unsupported mode", string(mode), nil)
	}
}

func (s *Service) searchVideo(ctx context.Context, text string) (*types.MediaAsset, error) {
	if s.VideoSearcher == nil || !s.VideoSearcher.Configured() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "视频API配置缺失", "video.api_key", nil)
	}

	query := media.BuildQuery(text)
	orientation := s.VideoOrientation
	if orientation == "" {
		orientation = "landscape"
	}
	result, err := s.VideoSearcher.SearchVideos(ctx, types.VideoSearchReq{
		Query:       query,
		PerPage:     1,
		Orientation: orientation,
	})
	if err != nil {
		log.GetLogger().Error("视频搜索失败", zap.String("query", query), zap.Error(err))
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeVideoSearchFailed, "视频搜索失败", err)
	}

	if result == nil || len(result.Videos) == 0 {
		return nil, apperrors.WrapWithDetail(apperrors.CodeVideoNotFound, "未找到匹配的视频", query, nil)
	}
	asset, ok := media.VideoAsset(result.Videos[0], query)
	if !ok {
		return nil, apperrors.WrapWithDetail(apperrors.CodeVideoNotFound, "未找到匹配的视频", query, nil)
	}
	return asset, nil
}
