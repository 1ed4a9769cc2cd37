package dto

import "storykura/internal/types"

type CreateSessionReq struct {
	Text  string             `json:"text"`
	Mode  types.MediaMode    `json:"mode"`
	Voice types.VoiceOptions `json:"voice"`
}

type SetModeReq struct {
	Mode types.MediaMode `json:"mode"`
}

type EditSegmentReq struct {
	LectureText string `json:"lectureText"`
}

type SessionSummary struct {
	Id           string          `json:"id"`
	Version      int64           `json:"version"`
	Mode         types.MediaMode `json:"mode"`
	SegmentCount int             `json:"segmentCount"`
	CreatedAt    int64           `json:"createdAt"`
	UpdatedAt    int64           `json:"updatedAt"`
}

type ListSessionsResData struct {
	Sessions []SessionSummary `json:"sessions"`
}
