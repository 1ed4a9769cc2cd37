package dto

import "storykura/internal/types"

type MediaReq struct {
	Text string          `json:"text"`
	Mode types.MediaMode `json:"mode"`
}

type MediaResData = types.MediaAsset
