package tts

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const (
	ProviderDashscope = "dashscope"
	ProviderMinimax   = "minimax"
	ProviderDoubao    = "doubao"
)

// CompositeTtsClient routes a request to one provider: an explicit provider in the voice
// options wins, otherwise the configured default.
type CompositeTtsClient struct {
	Providers       map[string]types.Ttser
	DefaultProvider string
}

func NewCompositeTtsClient(defaultProvider string, providers map[string]types.Ttser) *CompositeTtsClient {
	normalized := normalizeProvider(defaultProvider)
	if normalized == "" {
		normalized = ProviderDashscope
	}
	return &CompositeTtsClient{Providers: providers, DefaultProvider: normalized}
}

// Configured reports whether the default provider can be called.
func (c *CompositeTtsClient) Configured() bool {
	p, ok := c.Providers[c.DefaultProvider]
	return ok && p != nil && p.Configured()
}

func (c *CompositeTtsClient) Text2Speech(ctx context.Context, text string, voice types.VoiceOptions, outputFile string) error {
	name := normalizeProvider(voice.Provider)
	if name == "" {
		name = c.DefaultProvider
	}
	provider, ok := c.Providers[name]
	if !ok || provider == nil {
		return apperrors.WrapWithDetail(apperrors.CodeUnsupported, "不支持的语音服务 Unsupported TTS provider", name, nil)
	}
	if !provider.Configured() {
		return apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "语音API配置缺失", name, nil)
	}

	log.GetLogger().Info("Routing TTS request", zap.String("provider", name), zap.String("voice", voice.Voice))
	return provider.Text2Speech(ctx, text, voice, outputFile)
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
