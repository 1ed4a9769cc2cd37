package types

import "context"

type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
	JsonMode     bool
}

type ChatCompleter interface {
	Configured() bool
	ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// VoiceOptions selects the synthesis voice. Empty fields fall back to the configured defaults.
type VoiceOptions struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"voiceModel"`
	Voice    string `json:"voiceStyle"`
}

type Ttser interface {
	Configured() bool
	Text2Speech(ctx context.Context, text string, voice VoiceOptions, outputFile string) error
}

type VideoSearcher interface {
	Configured() bool
	SearchVideos(ctx context.Context, req VideoSearchReq) (*VideoSearchResult, error)
}
