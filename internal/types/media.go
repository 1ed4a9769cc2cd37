package types

type MediaMode string

const (
	MediaModeSearch  MediaMode = "search"  // 视频
	MediaModeLecture MediaMode = "lecture" // 图文
)

func (m MediaMode) Valid() bool {
	return m == MediaModeSearch || m == MediaModeLecture
}

type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

// MediaAsset is the visual attached to one segment; video and image fields are exclusive.
type MediaAsset struct {
	Kind      MediaKind `json:"kind"`
	VideoUrl  string    `json:"videoUrl,omitempty"`
	ImageUrl  string    `json:"imageUrl,omitempty"`
	Thumbnail string    `json:"videoThumbnail,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Duration  int       `json:"duration,omitempty"`
	Query     string    `json:"query,omitempty"`
}

type VideoSearchReq struct {
	Query       string
	PerPage     int
	Orientation string
}

type VideoFile struct {
	Id       int    `json:"id"`
	Quality  string `json:"quality"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Link     string `json:"link"`
}

type Video struct {
	Id         int         `json:"id"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Duration   int         `json:"duration"`
	Url        string      `json:"url"`
	Image      string      `json:"image"`
	VideoFiles []VideoFile `json:"video_files"`
}

type VideoSearchResult struct {
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	TotalResults int     `json:"total_results"`
	Videos       []Video `json:"videos"`
}
