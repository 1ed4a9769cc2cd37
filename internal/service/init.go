package service

import (
	"time"

	"go.uber.org/zap"

	"storykura/config"
	"storykura/internal/deps"
	"storykura/internal/session"
	"storykura/internal/types"
	"storykura/log"
	"storykura/pkg/dashscope"
	"storykura/pkg/doubao"
	"storykura/pkg/minimax"
	"storykura/pkg/openai"
	"storykura/pkg/pexels"
	"storykura/pkg/tts"
)

type Service struct {
	ChatCompleter types.ChatCompleter
	TtsClient     types.Ttser
	VideoSearcher types.VideoSearcher
	Sessions      *session.Store

	Model              string
	Temperature        *float32
	PlaceholderBaseUrl string
	VideoOrientation   string
	MaxConcurrency     int

	now func() time.Time
}

func NewService() *Service {
	conf := config.Conf
	seconds := func(n int) time.Duration { return time.Duration(n) * time.Second }

	chatCompleter := openai.NewClient(conf.Llm.BaseUrl, conf.Llm.ApiKey, conf.Llm.Model, seconds(conf.Llm.TimeoutSec))
	videoSearcher := pexels.NewClient(conf.Video.BaseUrl, conf.Video.ApiKey, seconds(conf.Video.TimeoutSec))

	temperature := conf.Llm.Temperature
	scriptCandidates := deps.ScriptCandidates(conf.Tts.Dashscope.ScriptPath)

	// Use Composite TTS Client to support multiple providers dynamically
	ttsClient := tts.NewCompositeTtsClient(conf.Tts.Provider, map[string]types.Ttser{
		tts.ProviderDashscope: dashscope.NewClient(
			conf.Tts.Dashscope.PythonPath,
			conf.Tts.Dashscope.ApiKey,
			conf.Tts.Dashscope.Model,
			conf.Tts.Dashscope.Voice,
			scriptCandidates,
			seconds(conf.Tts.TimeoutSec),
		),
		tts.ProviderMinimax: minimax.NewMiniMaxClient(
			conf.Tts.Minimax.BaseUrl,
			conf.Tts.Minimax.ApiKey,
			conf.Tts.Minimax.GroupId,
			conf.Tts.Minimax.Model,
			seconds(conf.Tts.TimeoutSec),
		),
		tts.ProviderDoubao: doubao.NewDoubaoClient(
			conf.Tts.Doubao.BaseUrl,
			conf.Tts.Doubao.AppId,
			conf.Tts.Doubao.AccessToken,
			conf.Tts.Doubao.ResourceId,
			seconds(conf.Tts.TimeoutSec),
		),
	})
	log.GetLogger().Info("当前选择的语音合成源", zap.String("provider", ttsClient.DefaultProvider))

	return &Service{
		ChatCompleter:      chatCompleter,
		TtsClient:          ttsClient,
		VideoSearcher:      videoSearcher,
		Sessions:           session.NewStore(),
		Model:              conf.Llm.Model,
		Temperature:        &temperature,
		PlaceholderBaseUrl: conf.Video.PlaceholderBaseUrl,
		VideoOrientation:   conf.Video.Orientation,
		MaxConcurrency:     conf.App.MaxConcurrency,
	}
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
