package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"storykura/config"
	"storykura/internal/appdirs"
	"storykura/log"
)

type DependencyTier string

const (
	DependencyTierMust     DependencyTier = "must"
	DependencyTierShould   DependencyTier = "should"
	DependencyTierOptional DependencyTier = "optional"
)

type DependencyStatus string

const (
	DependencyStatusOK      DependencyStatus = "ok"
	DependencyStatusMissing DependencyStatus = "missing"
	DependencyStatusError   DependencyStatus = "error"
)

type DependencySource string

const (
	DependencySourceStorage    DependencySource = "storage"
	DependencySourceLookPath   DependencySource = "lookpath"
	DependencySourceCandidates DependencySource = "candidates"
)

type DependencySpec struct {
	ID          string
	Name        string
	Command     string
	Tier        DependencyTier
	StoragePath string
	Candidates  []string
	Hint        string
}

type DependencyState struct {
	DependencySpec
	ResolvedPath string
	Status       DependencyStatus
	Source       DependencySource
	Error        string
}

type PathResolver struct {
	LookPath func(file string) (string, error)
	AbsPath  func(path string) (string, error)
	Stat     func(name string) (os.FileInfo, error)
}

func NewPathResolver() PathResolver {
	return PathResolver{
		LookPath: exec.LookPath,
		AbsPath:  filepath.Abs,
		Stat:     os.Stat,
	}
}

func (r PathResolver) Resolve(spec DependencySpec) DependencyState {
	state := DependencyState{DependencySpec: spec}
	configured := strings.TrimSpace(spec.StoragePath)

	if configured != "" {
		state.Source = DependencySourceStorage
		resolvedPath, err := r.resolveConfiguredPath(configured)
		if err == nil {
			state.Status = DependencyStatusOK
			state.ResolvedPath = resolvedPath
			return state
		}

		if absPath, absErr := r.AbsPath(configured); absErr == nil {
			state.ResolvedPath = absPath
		} else {
			state.ResolvedPath = configured
		}
		state.Error = err.Error()
		if isMissingPathError(err) {
			state.Status = DependencyStatusMissing
		} else {
			state.Status = DependencyStatusError
		}
		return state
	}

	if len(spec.Candidates) > 0 {
		return r.resolveCandidates(state)
	}

	state.Source = DependencySourceLookPath
	resolvedPath, err := r.LookPath(spec.Command)
	if err == nil {
		state.Status = DependencyStatusOK
		state.ResolvedPath = resolvedPath
		return state
	}

	state.Error = err.Error()
	if isMissingPathError(err) {
		state.Status = DependencyStatusMissing
		return state
	}
	state.Status = DependencyStatusError
	return state
}

func (r PathResolver) resolveConfiguredPath(configuredPath string) (string, error) {
	if resolvedPath, err := r.LookPath(configuredPath); err == nil {
		return resolvedPath, nil
	}

	absPath, err := r.AbsPath(configuredPath)
	if err != nil {
		return "", err
	}
	if _, err = r.Stat(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// resolveCandidates picks the first candidate file that exists.
func (r PathResolver) resolveCandidates(state DependencyState) DependencyState {
	state.Source = DependencySourceCandidates
	for _, candidate := range state.Candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		absPath, err := r.AbsPath(candidate)
		if err != nil {
			continue
		}
		info, err := r.Stat(absPath)
		if err != nil || info.IsDir() {
			continue
		}
		state.Status = DependencyStatusOK
		state.ResolvedPath = absPath
		return state
	}
	state.Status = DependencyStatusMissing
	state.Error = fmt.Sprintf("none of %d candidate paths exist", len(state.Candidates))
	return state
}

func ResolveDependencyStates(specs []DependencySpec, resolver PathResolver) []DependencyState {
	resolved := make([]DependencyState, 0, len(specs))
	for _, spec := range specs {
		resolved = append(resolved, resolver.Resolve(spec))
	}
	return resolved
}

func ResolveDependencyInventory(ttsProvider, pythonPath string, scriptCandidates []string) []DependencyState {
	specs := BuildDependencyInventory(ttsProvider, pythonPath, scriptCandidates)
	return ResolveDependencyStates(specs, NewPathResolver())
}

// BuildDependencyInventory lists the local programs the process TTS path needs.
// Nothing here is a must: the other features keep working without them.
func BuildDependencyInventory(ttsProvider, pythonPath string, scriptCandidates []string) []DependencySpec {
	normalizedTtsProvider := strings.ToLower(strings.TrimSpace(ttsProvider))
	if normalizedTtsProvider == "" {
		normalizedTtsProvider = "dashscope"
	}

	tier := DependencyTierOptional
	if normalizedTtsProvider == "dashscope" {
		tier = DependencyTierShould
	}

	command := strings.TrimSpace(pythonPath)
	if command == "" {
		command = "python"
	}

	return []DependencySpec{
		{
			ID:      "python",
			Name:    "python",
			Command: command,
			Tier:    tier,
			Hint: providerHint(
				normalizedTtsProvider,
				"dashscope",
				"Current TTS provider is dashscope; python runs the synthesis script.",
				"Needed only if you switch TTS provider to dashscope.",
			),
		},
		{
			ID:         "tts-script",
			Name:       "tts script",
			Tier:       tier,
			Candidates: scriptCandidates,
			Hint:       "Place dashscope_tts.py in one of the script directories or set tts.dashscope.script_path.",
		},
	}
}

// ScriptCandidates puts the configured script path ahead of the app-dir defaults.
func ScriptCandidates(scriptPath string) []string {
	var candidates []string
	if scriptPath = strings.TrimSpace(scriptPath); scriptPath != "" {
		candidates = append(candidates, scriptPath)
	}
	dirs, err := appdirs.Resolve()
	if err != nil {
		log.GetLogger().Warn("解析应用目录失败, 使用默认脚本路径", zap.Error(err))
		dirs = appdirs.Paths{}
	}
	return append(candidates, appdirs.TtsScriptCandidates(dirs)...)
}

// CheckDependency logs the dependency report; missing must-tier entries are returned as an error.
func CheckDependency() error {
	candidates := ScriptCandidates(config.Conf.Tts.Dashscope.ScriptPath)
	states := ResolveDependencyInventory(config.Conf.Tts.Provider, config.Conf.Tts.Dashscope.PythonPath, candidates)
	var missing []string
	for _, state := range states {
		if state.Status == DependencyStatusOK {
			log.GetLogger().Info("依赖检查通过", zap.String("name", state.Name), zap.String("path", state.ResolvedPath))
			continue
		}
		log.GetLogger().Warn("依赖缺失",
			zap.String("name", state.Name),
			zap.String("tier", string(state.Tier)),
			zap.String("error", state.Error),
			zap.String("hint", state.Hint))
		if state.Tier == DependencyTierMust {
			missing = append(missing, state.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required dependencies: %s", strings.Join(missing, ", "))
	}
	return nil
}

func FormatDependencyReport(states []DependencyState) string {
	if len(states) == 0 {
		return "No dependencies to diagnose."
	}

	var builder strings.Builder
	builder.WriteString("Dependency status")

	for _, state := range states {
		resolvedPath := strings.TrimSpace(state.ResolvedPath)
		if resolvedPath == "" {
			resolvedPath = "unknown"
		}

		source := strings.TrimSpace(string(state.Source))
		if source == "" {
			source = "n/a"
		}

		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("- %s [%s]: %s | path=%s | source=%s", state.Name, strings.ToUpper(string(state.Tier)), state.Status, resolvedPath, source))
		if state.Error != "" {
			builder.WriteString("\n")
			builder.WriteString("  error: ")
			builder.WriteString(state.Error)
		}
		if state.Hint != "" {
			builder.WriteString("\n")
			builder.WriteString("  hint: ")
			builder.WriteString(state.Hint)
		}
	}

	return builder.String()
}

func providerHint(provider, target, activeHint, inactiveHint string) string {
	if provider == target {
		return activeHint
	}
	return inactiveHint
}

func isMissingPathError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
		return true
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		if errors.Is(pathErr.Err, os.ErrNotExist) {
			return true
		}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		if errors.Is(execErr.Err, exec.ErrNotFound) {
			return true
		}
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "not found") || strings.Contains(message, "cannot find")
}
