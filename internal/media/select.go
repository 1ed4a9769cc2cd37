package media

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"storykura/internal/types"
)

const (
	preferredQuality  = "sd"
	preferredFileType = "video/mp4"

	placeholderSize   = "800x450"
	placeholderPrefix = 20
)

// SelectFile prefers a standard-definition mp4 encoding and otherwise takes the first one.
func SelectFile(files []types.VideoFile) (types.VideoFile, bool) {
	if len(files) == 0 {
		return types.VideoFile{}, false
	}
	if f, ok := lo.Find(files, func(f types.VideoFile) bool {
		return f.Quality == preferredQuality && f.FileType == preferredFileType
	}); ok {
		return f, true
	}
	return files[0], true
}

// VideoAsset builds the asset for the first video of a search result.
func VideoAsset(v types.Video, query string) (*types.MediaAsset, bool) {
	f, ok := SelectFile(v.VideoFiles)
	if !ok {
		return nil, false
	}
	width, height := f.Width, f.Height
	if width == 0 || height == 0 {
		width, height = v.Width, v.Height
	}
	return &types.MediaAsset{
		Kind:      types.MediaKindVideo,
		VideoUrl:  f.Link,
		Thumbnail: v.Image,
		Width:     width,
		Height:    height,
		Duration:  v.Duration,
		Query:     query,
	}, true
}

// PlaceholderImageURL 图文模式: 用文本前缀生成占位图
func PlaceholderImageURL(base, text string) string {
	prefix := string(lo.Subset([]rune(text), 0, placeholderPrefix))
	return fmt.Sprintf("%s/%s?text=%s...", strings.TrimRight(base, "/"), placeholderSize, strings.ReplaceAll(url.QueryEscape(prefix), "+", "%20"))
}

// ImageAsset builds a lecture-mode asset.
func ImageAsset(base, text string) *types.MediaAsset {
	return &types.MediaAsset{
		Kind:     types.MediaKindImage,
		ImageUrl: PlaceholderImageURL(base, text),
		Width:    800,
		Height:   450,
	}
}
