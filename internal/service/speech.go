package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
	"storykura/pkg/util"
)

// SynthesizeSpeech writes an mp3 for text under the audio root and returns its public URL.
func (s *Service) SynthesizeSpeech(ctx context.Context, text string, voice types.VoiceOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrEmptyText
	}
	if s.TtsClient == nil || (voice.Provider == "" && !s.TtsClient.Configured()) {
		return "", apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "语音API配置缺失", "tts", nil)
	}

	fileName := util.SpeechFileName(text, s.clock())
	outputPath, audioUrl, err := resolveAudioFile(fileName)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeFileWriteError, "解析音频目录失败", err)
	}

	if err = s.TtsClient.Text2Speech(ctx, text, voice, outputPath); err != nil {
		log.GetLogger().Error("生成语音失败", zap.String("output", outputPath), zap.Error(err))
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return "", err
		}
		return "", apperrors.Wrap(apperrors.CodeTTSFailed, "生成语音失败", err)
	}

	log.GetLogger().Info("语音生成成功", zap.String("audioUrl", audioUrl))
	return audioUrl, nil
}
