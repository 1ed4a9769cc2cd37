package appdirs

import (
	"path/filepath"
	"strings"
)

const (
	AudioRootName     = "audio"
	ttsScriptFileName = "dashscope_tts.py"
)

// AudioRootFor is where synthesized speech files live; it is served under /audio.
func AudioRootFor(paths Paths) string {
	return filepath.Join(normalizeOutputDir(paths.OutputDir), AudioRootName)
}

func AudioFileFor(paths Paths, fileName string) string {
	return filepath.Join(AudioRootFor(paths), fileName)
}

// TtsScriptCandidates lists where the speech synthesis script may live, most specific first.
func TtsScriptCandidates(paths Paths) []string {
	scriptDir := strings.TrimSpace(paths.ScriptDir)
	if scriptDir == "" {
		scriptDir = "scripts"
	}
	return uniquePaths(
		filepath.Join(filepath.Clean(scriptDir), ttsScriptFileName),
		filepath.Join("scripts", ttsScriptFileName),
		filepath.Join("storykura", "scripts", ttsScriptFileName),
		filepath.Join("..", "scripts", ttsScriptFileName),
	)
}

func normalizeOutputDir(outputDir string) string {
	cleaned := strings.TrimSpace(outputDir)
	if cleaned == "" {
		return "."
	}
	return filepath.Clean(cleaned)
}

func uniquePaths(paths ...string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
