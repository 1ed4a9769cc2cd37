package openai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

// Client implements types.ChatCompleter against any OpenAI compatible endpoint.
type Client struct {
	client  *openai.Client
	model   string
	baseUrl string
	apiKey  string
}

func NewClient(baseUrl, apiKey, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = strings.TrimRight(baseUrl, "/")
	}
	// 超时由配置决定, 0 表示不限
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	if model == "" {
		model = openai.GPT4
	}
	return &Client{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		baseUrl: baseUrl,
		apiKey:  apiKey,
	}
}

// Configured reports whether both the endpoint and the key are set.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != "" && c.baseUrl != ""
}

func (c *Client) ChatCompletion(ctx context.Context, req types.ChatRequest) (string, error) {
	if !c.Configured() {
		return "", apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "LLM API配置缺失", "llm.api_key / llm.base_url", nil)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.UserPrompt,
			},
		},
		Temperature: wireTemperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if req.JsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		log.GetLogger().Error("openai create chat completion failed", zap.String("model", c.model), zap.Error(err))
		return "", apperrors.Wrap(apperrors.CodeLLMFailed, "文本处理失败 LLM request failed", fmt.Errorf("create chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.ErrLLMEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	log.GetLogger().Debug("openai chat completion done",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return content, nil
}

// wireTemperature keeps an explicit 0 on the wire: the request field is omitempty, and a
// dropped temperature means the server default of 1.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
