package types

// Segment is one sentence-level unit of the script: the source text and its spoken rewrite.
type Segment struct {
	OriginalText string `json:"originalText"`
	LectureText  string `json:"lectureText"`
}

type SegmentStatus string

const (
	SegmentStatusPending    SegmentStatus = "pending"
	SegmentStatusProcessing SegmentStatus = "processing"
	SegmentStatusCompleted  SegmentStatus = "completed"
	SegmentStatusError      SegmentStatus = "error"
)

// ScriptSegment is the editor-side segment: identity, generated assets and status.
// Status and Error summarize the per-kind fields; audio and media work run independently.
type ScriptSegment struct {
	Segment
	Id          string        `json:"id"`
	AudioUrl    string        `json:"audioUrl"`
	Media       *MediaAsset   `json:"media,omitempty"`
	Status      SegmentStatus `json:"status"`
	Error       string        `json:"error,omitempty"`
	AudioStatus SegmentStatus `json:"audioStatus,omitempty"`
	AudioError  string        `json:"audioError,omitempty"`
	MediaStatus SegmentStatus `json:"mediaStatus,omitempty"`
	MediaError  string        `json:"mediaError,omitempty"`
}

// 讲课风格包装语
const (
	LectureWrapperMissing  = "let me explain: "
	LectureWrapperFallback = "let me explain this: "
)
