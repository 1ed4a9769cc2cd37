// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"storykura/internal/types"

	"github.com/stretchr/testify/mock"
)

// MockChatCompleter is a mock implementation of types.ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockChatCompleter) ChatCompletion(ctx context.Context, req types.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockTtser is a mock implementation of types.Ttser
type MockTtser struct {
	mock.Mock
}

func (m *MockTtser) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockTtser) Text2Speech(ctx context.Context, text string, voice types.VoiceOptions, outputFile string) error {
	args := m.Called(ctx, text, voice, outputFile)
	return args.Error(0)
}

// MockVideoSearcher is a mock implementation of types.VideoSearcher
type MockVideoSearcher struct {
	mock.Mock
}

func (m *MockVideoSearcher) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockVideoSearcher) SearchVideos(ctx context.Context, req types.VideoSearchReq) (*types.VideoSearchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.VideoSearchResult), args.Error(1)
}
