// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess        = 0
	CodeUnknown        = 1000
	CodeInvalidParams  = 1001
	CodeNotFound       = 1002
	CodeUnsupported    = 1003
	CodeConfigMissing  = 1004
	CodeStaleOperation = 1005

	// Text breakdown / rewrite errors (1300-1399)
	CodeLLMFailed        = 1300
	CodeLLMTimeout       = 1301
	CodeLLMEmptyResponse = 1302

	// TTS errors (1400-1499)
	CodeTTSFailed       = 1400
	CodeTTSEmptyOutput  = 1401
	CodeTTSScriptAbsent = 1402

	// Storage errors (1500-1599)
	CodeFileNotFound   = 1501
	CodeFileWriteError = 1502

	// Media search errors (1600-1699)
	CodeVideoSearchFailed = 1600
	CodeVideoNotFound     = 1601
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetDetail extracts detail from error, empty when the error carries none
func GetDetail(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail
	}
	return ""
}

// IsValidation reports whether err was raised before any external call because of bad input.
func IsValidation(err error) bool {
	return Is(err, CodeInvalidParams)
}

// IsConfiguration reports whether err is a missing credential/URL for a collaborator.
func IsConfiguration(err error) bool {
	return Is(err, CodeConfigMissing)
}

// IsNotFound covers both missing resources and empty video search results.
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound) || Is(err, CodeVideoNotFound)
}

// Predefined common errors
var (
	ErrInvalidParams  = New(CodeInvalidParams, "参数错误 Invalid parameters")
	ErrNotFound       = New(CodeNotFound, "资源不存在 Resource not found")
	ErrUnsupported    = New(CodeUnsupported, "不支持的操作 Unsupported operation")
	ErrConfigMissing  = New(CodeConfigMissing, "配置缺失 Configuration missing")
	ErrStaleOperation = New(CodeStaleOperation, "操作已过期 Superseded by a newer request")

	// Text
	ErrEmptyText        = New(CodeInvalidParams, "缺少必要的文本参数 Text is required")
	ErrLLMFailed        = New(CodeLLMFailed, "文本处理失败 LLM request failed")
	ErrLLMEmptyResponse = New(CodeLLMEmptyResponse, "模型未返回内容 LLM returned no content")

	// TTS
	ErrTTSFailed      = New(CodeTTSFailed, "语音合成失败 TTS failed")
	ErrTTSEmptyOutput = New(CodeTTSEmptyOutput, "语音文件为空 TTS output is empty")

	// Storage
	ErrFileNotFound = New(CodeFileNotFound, "文件不存在 File not found")

	// Media
	ErrVideoSearchFailed = New(CodeVideoSearchFailed, "视频搜索失败 Video search failed")
	ErrVideoNotFound     = New(CodeVideoNotFound, "未找到匹配的视频 No matching video found")
)
