package dto

import "storykura/internal/types"

type BreakdownReq struct {
	Text string `json:"text"`
}

type BreakdownResData struct {
	Segments []types.Segment `json:"segments"`
	// Source is the extraction rule that produced Segments, "fallback" when the text was split locally.
	Source string `json:"source"`
	// Degraded is set when the model call failed and the segments come from the local fallback.
	Degraded   bool    `json:"degraded"`
	Similarity float64 `json:"similarity"`
}

type RewriteReq struct {
	Text string `json:"text"`
}

type RewriteResData struct {
	LectureText string `json:"lectureText"`
}
