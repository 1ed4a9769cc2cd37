package minimax

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const (
	DefaultBaseUrl = "https://api.minimax.chat/v1/t2a_v2"
	DefaultModel   = "speech-01-turbo"
	DefaultVoice   = "male-qn-qingse"
)

// MiniMaxClient implements types.Ttser interface
type MiniMaxClient struct {
	ApiKey  string
	GroupId string
	Model   string
	client  *resty.Client
}

func NewMiniMaxClient(baseUrl, apiKey, groupId, model string, timeout time.Duration) *MiniMaxClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if model == "" {
		model = DefaultModel
	}
	return &MiniMaxClient{
		ApiKey:  apiKey,
		GroupId: groupId,
		Model:   model,
		client: resty.New().
			SetBaseURL(baseUrl).
			SetTimeout(timeout).
			SetAuthToken(apiKey),
	}
}

type T2ARequest struct {
	Model        string       `json:"model"`
	Text         string       `json:"text"`
	VoiceSetting VoiceSetting `json:"voice_setting"`
	AudioSetting AudioSetting `json:"audio_setting"`
	Stream       bool         `json:"stream"`
}

type VoiceSetting struct {
	VoiceId string `json:"voice_id"`
}

type AudioSetting struct {
	SampleRate int    `json:"sample_rate"`
	Format     string `json:"format"`
	Channel    int    `json:"channel"`
}

type T2AResponse struct {
	BaseResp BaseResp `json:"base_resp"`
	Data     struct {
		Audio  string `json:"audio"`
		Status int    `json:"status"` // 2 means finished
	} `json:"data"`
	TraceId string `json:"trace_id"`
}

type BaseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

func (c *MiniMaxClient) Configured() bool {
	return c != nil && c.ApiKey != "" && c.GroupId != ""
}

func (c *MiniMaxClient) Text2Speech(ctx context.Context, text string, voice types.VoiceOptions, outputFile string) error {
	if !c.Configured() {
		return apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "MiniMax配置缺失", "tts.minimax.api_key / tts.minimax.group_id", nil)
	}
	// 确保输出目录存在
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "创建音频目录失败", err)
	}

	voiceId := voice.Voice
	if voiceId == "" {
		voiceId = DefaultVoice
	}
	model := voice.Model
	if model == "" {
		model = c.Model
	}

	var apiResp T2AResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("GroupId", c.GroupId).
		SetBody(T2ARequest{
			Model:        model,
			Text:         text,
			VoiceSetting: VoiceSetting{VoiceId: voiceId},
			AudioSetting: AudioSetting{SampleRate: 32000, Format: "mp3", Channel: 1},
		}).
		SetResult(&apiResp).
		Post("")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTTSFailed, "MiniMax语音合成失败", fmt.Errorf("http request failed: %w", err))
	}
	if resp.IsError() {
		return apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "MiniMax语音合成失败",
			fmt.Sprintf("status %d: %s", resp.StatusCode(), resp.String()), nil)
	}
	if apiResp.BaseResp.StatusCode != 0 {
		return apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "MiniMax语音合成失败",
			fmt.Sprintf("minimax api error: %d - %s", apiResp.BaseResp.StatusCode, apiResp.BaseResp.StatusMsg), nil)
	}
	if apiResp.Data.Audio == "" {
		return apperrors.ErrTTSEmptyOutput
	}

	// 音频以 hex 编码返回
	audioBytes, err := hex.DecodeString(apiResp.Data.Audio)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTTSFailed, "MiniMax音频解码失败", err)
	}
	if err = os.WriteFile(outputFile, audioBytes, 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "写入音频文件失败", err)
	}

	log.GetLogger().Info("MiniMax TTS success", zap.String("output", outputFile), zap.Int("bytes", len(audioBytes)), zap.String("trace_id", apiResp.TraceId))
	return nil
}
