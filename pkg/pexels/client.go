// Package pexels is a small client for the Pexels video search API.
package pexels

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const DefaultBaseUrl = "https://api.pexels.com/videos"

// Client implements types.VideoSearcher.
type Client struct {
	client *resty.Client
	apiKey string
}

func NewClient(baseUrl, apiKey string, timeout time.Duration) *Client {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseUrl, "/")).
		SetTimeout(timeout).
		SetHeader("Authorization", apiKey)
	return &Client{client: client, apiKey: apiKey}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// SearchVideos runs GET {base}/search. An empty result set is not an error here.
func (c *Client) SearchVideos(ctx context.Context, req types.VideoSearchReq) (*types.VideoSearchResult, error) {
	if !c.Configured() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "视频API配置缺失", "video.api_key", nil)
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 1
	}
	orientation := req.Orientation
	if orientation == "" {
		orientation = "landscape"
	}

	var result types.VideoSearchResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       req.Query,
			"per_page":    strconv.Itoa(perPage),
			"orientation": orientation,
		}).
		SetResult(&result).
		Get("/search")
	if err != nil {
		log.GetLogger().Error("pexels search request failed", zap.String("query", req.Query), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.CodeVideoSearchFailed, "视频搜索失败 Video search failed", fmt.Errorf("search videos: %w", err))
	}
	if resp.IsError() {
		log.GetLogger().Error("pexels search returned error status",
			zap.String("query", req.Query),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, apperrors.WrapWithDetail(apperrors.CodeVideoSearchFailed, "视频搜索失败 Video search failed",
			fmt.Sprintf("status %d: %s", resp.StatusCode(), resp.String()), nil)
	}

	log.GetLogger().Debug("pexels search done", zap.String("query", req.Query), zap.Int("videos", len(result.Videos)))
	return &result, nil
}
