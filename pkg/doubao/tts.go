package doubao

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const (
	DefaultBaseUrl    = "https://openspeech.bytedance.com/api/v3/tts/unidirectional"
	DefaultResourceId = "seed-tts-1.0"
	DefaultVoice      = "zh_female_wanqudashu_moon_bigtts"

	// 只有 seed-tts-* 是合法的资源 ID，其他 model（如 cosyvoice-v2）忽略
	resourceIdPrefix = "seed-tts-"

	// 3000 为 V3 接口的成功码，流式分片也可能返回 0
	codeSuccess = 3000
)

// DoubaoClient implements types.Ttser for Volcengine Doubao TTS (V3 unidirectional stream).
type DoubaoClient struct {
	AppId       string
	AccessToken string
	ResourceId  string
	client      *resty.Client
}

func NewDoubaoClient(baseUrl, appId, accessToken, resourceId string, timeout time.Duration) *DoubaoClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if resourceId == "" {
		resourceId = DefaultResourceId
	}
	return &DoubaoClient{
		AppId:       appId,
		AccessToken: accessToken,
		ResourceId:  resourceId,
		client: resty.New().
			SetBaseURL(baseUrl).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type TTSRequest struct {
	User      User      `json:"user"`
	ReqParams ReqParams `json:"req_params"`
}

type User struct {
	Uid string `json:"uid"`
}

type ReqParams struct {
	Text        string      `json:"text"`
	Speaker     string      `json:"speaker"`
	AudioParams AudioParams `json:"audio_params"`
}

type AudioParams struct {
	Format     string `json:"format"`
	SampleRate int    `json:"sample_rate"`
}

// TTSResponse is one chunk of the stream; Data is base64 audio.
type TTSResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (c *DoubaoClient) Configured() bool {
	return c != nil && c.AppId != "" && c.AccessToken != ""
}

func (c *DoubaoClient) Text2Speech(ctx context.Context, text string, voice types.VoiceOptions, outputFile string) error {
	if !c.Configured() {
		return apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "豆包语音配置缺失", "tts.doubao.app_id / tts.doubao.access_token", nil)
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "创建音频目录失败", err)
	}

	speaker := voice.Voice
	if speaker == "" {
		speaker = DefaultVoice
	}
	resourceId := c.ResourceId
	if strings.HasPrefix(voice.Model, resourceIdPrefix) {
		resourceId = voice.Model
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Api-App-Key", c.AppId).
		SetHeader("X-Api-Access-Key", c.AccessToken).
		SetHeader("X-Api-Resource-Id", resourceId).
		SetBody(TTSRequest{
			User: User{Uid: "storykura_" + uuid.New().String()[:8]},
			ReqParams: ReqParams{
				Text:        text,
				Speaker:     speaker,
				AudioParams: AudioParams{Format: "mp3", SampleRate: 24000},
			},
		}).
		SetDoNotParseResponse(true).
		Post("")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTTSFailed, "豆包语音合成失败", fmt.Errorf("http request failed: %w", err))
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		return apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "豆包语音合成失败",
			fmt.Sprintf("status %d: %s", resp.StatusCode(), string(raw)), nil)
	}

	audio, err := readAudioStream(body)
	if err != nil {
		return err
	}
	if err = os.WriteFile(outputFile, audio, 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "写入音频文件失败", err)
	}

	log.GetLogger().Info("Doubao TTS success", zap.String("output", outputFile), zap.Int("bytes", len(audio)))
	return nil
}

// readAudioStream concatenates the audio of every JSON chunk in the body.
func readAudioStream(r io.Reader) ([]byte, error) {
	decoder := json.NewDecoder(r)
	var audio bytes.Buffer
	for {
		var chunk TTSResponse
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, apperrors.Wrap(apperrors.CodeTTSFailed, "豆包响应解析失败", err)
		}
		if chunk.Code != 0 && chunk.Code != codeSuccess {
			return nil, apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "豆包语音合成失败",
				fmt.Sprintf("doubao api error: %d - %s", chunk.Code, chunk.Message), nil)
		}
		if chunk.Data == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(chunk.Data)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeTTSFailed, "豆包音频解码失败", err)
		}
		audio.Write(decoded)
	}
	if audio.Len() == 0 {
		return nil, apperrors.ErrTTSEmptyOutput
	}
	return audio.Bytes(), nil
}
