package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"go.uber.org/zap"

	"storykura/internal/dto"
	"storykura/internal/segmenter"
	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
)

const (
	defaultTemperature = 0.7
	breakdownMaxTokens = 4000
	rewriteMaxTokens   = 1024
)

// Breakdown splits text into segments with a lecture-style rewrite per segment. A failed
// model call is not an error: the text is split locally and the result is marked degraded.
func (s *Service) Breakdown(ctx context.Context, text string) (*dto.BreakdownResData, error) {
	if err := s.checkLlm(text); err != nil {
		return nil, err
	}

	degraded := false
	raw, err := s.ChatCompleter.ChatCompletion(ctx, types.ChatRequest{
		SystemPrompt: types.BreakdownSystemPrompt,
		UserPrompt:   fmt.Sprintf(types.BreakdownUserPrompt, text),
		Temperature:  s.temperature(),
		MaxTokens:    breakdownMaxTokens,
		JsonMode:     true,
	})
	if err != nil {
		log.GetLogger().Warn("文本拆解调用失败, 使用本地分句", zap.Error(err))
		degraded = true
		raw = ""
	}

	segments, source := segmenter.NormalizeWithSource(raw, text)
	if len(segments) == 0 {
		return nil, apperrors.WrapWithDetail(apperrors.CodeUnknown, "文本拆解失败", "no segment could be produced", err)
	}

	log.GetLogger().Info("文本拆解完成",
		zap.Int("segments", len(segments)),
		zap.String("source", string(source)),
		zap.Bool("degraded", degraded),
	)
	return &dto.BreakdownResData{
		Segments:   segments,
		Source:     string(source),
		Degraded:   degraded,
		Similarity: coverage(text, segments),
	}, nil
}

// Rewrite converts text into the lecture register in one call. Failures are returned.
func (s *Service) Rewrite(ctx context.Context, text string) (string, error) {
	if err := s.checkLlm(text); err != nil {
		return "", err
	}

	reply, err := s.ChatCompleter.ChatCompletion(ctx, types.ChatRequest{
		SystemPrompt: types.RewriteSystemPrompt,
		UserPrompt:   fmt.Sprintf(types.RewriteUserPrompt, text),
		Temperature:  s.temperature(),
		MaxTokens:    rewriteMaxTokens,
	})
	if err != nil {
		log.GetLogger().Error("处理文本时出错", zap.Error(err))
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return "", err
		}
		return "", apperrors.Wrap(apperrors.CodeLLMFailed, "处理文本失败", err)
	}

	lectureText := strings.TrimSpace(reply)
	if lectureText == "" {
		return "", apperrors.ErrLLMEmptyResponse
	}
	return lectureText, nil
}

func (s *Service) checkLlm(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.ErrEmptyText
	}
	if s.ChatCompleter == nil || !s.ChatCompleter.Configured() {
		return apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "LLM API配置缺失", "llm.api_key / llm.base_url", nil)
	}
	return nil
}

// temperature is the configured value, including an explicit 0; nil means unset.
func (s *Service) temperature() float32 {
	if s.Temperature != nil {
		return *s.Temperature
	}
	return defaultTemperature
}

// coverage is the levenshtein ratio between the input and the segments' original text,
// whitespace ignored. 1 means the model kept the text verbatim.
func coverage(text string, segments []types.Segment) float64 {
	joined := strings.Join(lo.Map(segments, func(seg types.Segment, _ int) string {
		return seg.OriginalText
	}), "")
	source, target := stripSpace(text), stripSpace(joined)
	if len(source) == 0 && len(target) == 0 {
		return 1
	}
	return levenshtein.RatioForStrings(source, target, levenshtein.DefaultOptions)
}

func stripSpace(s string) []rune {
	return []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
