// Package dashscope synthesizes speech by running the DashScope python script as a child process.
package dashscope

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"storykura/internal/types"
	"storykura/log"
	apperrors "storykura/pkg/errors"
	"storykura/pkg/util"
)

const (
	DefaultModel = "cosyvoice-v2"
	DefaultVoice = "longxiaochun_v2"
)

// Client implements types.Ttser.
type Client struct {
	PythonPath       string
	ScriptCandidates []string
	ApiKey           string
	Model            string
	Voice            string
	Timeout          time.Duration
}

func NewClient(pythonPath, apiKey, model, voice string, scriptCandidates []string, timeout time.Duration) *Client {
	if pythonPath == "" {
		pythonPath = "python"
	}
	if model == "" {
		model = DefaultModel
	}
	if voice == "" {
		voice = DefaultVoice
	}
	return &Client{
		PythonPath:       pythonPath,
		ScriptCandidates: scriptCandidates,
		ApiKey:           apiKey,
		Model:            model,
		Voice:            voice,
		Timeout:          timeout,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.ApiKey != ""
}

// ResolveScript returns the first candidate that exists.
func (c *Client) ResolveScript() (string, error) {
	for _, candidate := range c.ScriptCandidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", apperrors.WrapWithDetail(apperrors.CodeTTSScriptAbsent, "找不到语音生成脚本文件",
		"已检查路径: "+strings.Join(c.ScriptCandidates, ", "), nil)
}

func (c *Client) Text2Speech(ctx context.Context, text string, voice types.VoiceOptions, outputFile string) error {
	if !c.Configured() {
		return apperrors.WrapWithDetail(apperrors.CodeConfigMissing, "语音API配置缺失", "tts.dashscope.api_key", nil)
	}
	script, err := c.ResolveScript()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "创建音频目录失败", err)
	}

	model := voice.Model
	if model == "" {
		model = c.Model
	}
	style := voice.Voice
	if style == "" {
		style = c.Voice
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	// --text=value keeps argparse from reading text such as "-5度" as an option
	args := []string{
		script,
		"--text=" + strings.ReplaceAll(text, "\n", " "),
		"--output", outputFile,
		"--model", model,
		"--voice", style,
		"--api_key", c.ApiKey,
	}
	cmd := exec.CommandContext(ctx, c.PythonPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.GetLogger().Info("开始生成语音", zap.String("script", script), zap.String("output", outputFile), zap.String("model", model), zap.String("voice", style))
	start := time.Now()
	runErr := cmd.Run()
	details := strings.TrimSpace(stderr.String())
	if details == "" {
		details = strings.TrimSpace(stdout.String())
	}

	if runErr != nil {
		log.GetLogger().Error("语音生成命令执行出错", zap.Error(runErr), zap.String("stderr", stderr.String()))
		return apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "语音生成失败，命令执行出错", details, fmt.Errorf("run tts script: %w", runErr))
	}
	if _, statErr := os.Stat(outputFile); statErr != nil {
		log.GetLogger().Error("语音文件未生成", zap.String("output", outputFile), zap.String("stdout", stdout.String()))
		return apperrors.WrapWithDetail(apperrors.CodeTTSFailed, "语音生成失败，文件未创建", details, statErr)
	}
	if !util.NonEmptyFile(outputFile) {
		log.GetLogger().Error("语音文件生成但大小为0", zap.String("output", outputFile))
		return apperrors.WrapWithDetail(apperrors.CodeTTSEmptyOutput, "语音生成失败，文件为空", details, nil)
	}

	log.GetLogger().Info("语音生成成功", zap.String("output", outputFile), zap.Duration("elapsed", time.Since(start)))
	return nil
}
