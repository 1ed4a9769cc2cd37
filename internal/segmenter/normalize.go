package segmenter

import (
	"strings"

	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	"storykura/pkg/util"
)

// Normalize turns a model reply into segments. It never fails: when nothing usable can be
// extracted the original text is split into sentences and wrapped locally.
func Normalize(raw, original string) []types.Segment {
	segs, _ := NormalizeWithSource(raw, original)
	return segs
}

// NormalizeWithSource is Normalize plus the name of the rule that produced the result.
func NormalizeWithSource(raw, original string) ([]types.Segment, Source) {
	body := strings.TrimSpace(raw)
	if fenced, ok := util.StripCodeFence(body); ok {
		body = fenced
	}

	root, err := parseTree([]byte(body))
	if err != nil {
		log.GetLogger().Debug("model reply is not JSON, using sentence fallback", zap.Error(err))
		return Fallback(original), SourceFallback
	}

	for _, s := range strategies {
		segs, matched := s.extract(root)
		if !matched {
			continue
		}
		if len(segs) == 0 {
			log.GetLogger().Debug("strategy matched but produced no segments", zap.String("strategy", string(s.name())))
			break
		}
		log.GetLogger().Debug("model reply normalized", zap.String("strategy", string(s.name())), zap.Int("segments", len(segs)))
		return segs, s.name()
	}
	return Fallback(original), SourceFallback
}

// Fallback builds one segment per sentence of original with the generic lecture wrapper.
func Fallback(original string) []types.Segment {
	sentences := Split(original)
	segs := make([]types.Segment, 0, len(sentences))
	for _, s := range sentences {
		segs = append(segs, types.Segment{
			OriginalText: s,
			LectureText:  types.LectureWrapperFallback + s,
		})
	}
	return segs
}
