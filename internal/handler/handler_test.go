package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"storykura/internal/appdirs"
	"storykura/internal/mocks"
	"storykura/internal/response"
	"storykura/internal/service"
	"storykura/internal/session"
	"storykura/internal/types"
	apperrors "storykura/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	chat   *mocks.MockChatCompleter
	tts    *mocks.MockTtser
	video  *mocks.MockVideoSearcher
	svc    *service.Service
}

func configurePathResolverForTest(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalResolver := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{
			OutputDir: filepath.Join(tempDir, "output"),
		}, nil
	}
	t.Cleanup(func() {
		appDirsResolver = originalResolver
	})
	return tempDir
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := testEnv{
		chat:  new(mocks.MockChatCompleter),
		tts:   new(mocks.MockTtser),
		video: new(mocks.MockVideoSearcher),
	}
	env.svc = &service.Service{
		ChatCompleter:      env.chat,
		TtsClient:          env.tts,
		VideoSearcher:      env.video,
		Sessions:           session.NewStore(),
		PlaceholderBaseUrl: "https://via.placeholder.com",
		MaxConcurrency:     1,
	}
	h := Handler{Service: env.svc}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/text/breakdown", h.Breakdown)
	api.POST("/text", h.Rewrite)
	api.POST("/speech", h.Speech)
	api.POST("/video", h.Video)
	api.GET("/health", h.Health)
	api.POST("/session", h.CreateSession)
	api.GET("/session", h.ListSessions)
	api.GET("/session/:sessionId", h.GetSession)
	api.DELETE("/session/:sessionId", h.DeleteSession)
	api.PUT("/session/:sessionId/mode", h.SetSessionMode)
	api.PUT("/session/:sessionId/segment/:segmentId", h.EditSegment)
	api.POST("/session/:sessionId/segment/:segmentId/media", h.AttachSegmentMedia)
	r.GET("/audio/*filepath", h.ServeAudio)
	r.HEAD("/audio/*filepath", h.ServeAudio)
	env.router = r
	return env
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (int, response.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return w.Code, res
}

func dataAs[T any](t *testing.T, res response.Response) T {
	t.Helper()
	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestBreakdownHandler(t *testing.T) {
	env := newTestEnv(t)
	env.chat.On("Configured").Return(true)
	env.chat.On("ChatCompletion", mock.Anything, mock.Anything).Return(`{"segments":[{"originalText":"A.","lectureText":"So, A."}]}`, nil)

	code, res := doJSON(t, env.router, http.MethodPost, "/api/text/breakdown", map[string]string{"text": "A."})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int32(0), res.Error)

	data := dataAs[map[string]any](t, res)
	assert.Equal(t, "segments", data["source"])
	assert.Equal(t, false, data["degraded"])
	assert.Equal(t, []any{map[string]any{"originalText": "A.", "lectureText": "So, A."}}, data["segments"])
}

func TestBreakdownHandler_EmptyText(t *testing.T) {
	env := newTestEnv(t)

	code, res := doJSON(t, env.router, http.MethodPost, "/api/text/breakdown", map[string]string{"text": ""})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)
}

func TestBreakdownHandler_BadJSON(t *testing.T) {
	env := newTestEnv(t)
	req, _ := http.NewRequest(http.MethodPost, "/api/text/breakdown", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)
}

func TestRewriteHandler_UpstreamError(t *testing.T) {
	env := newTestEnv(t)
	env.chat.On("Configured").Return(true)
	env.chat.On("ChatCompletion", mock.Anything, mock.Anything).Return("", errors.New("502"))

	_, res := doJSON(t, env.router, http.MethodPost, "/api/text", map[string]string{"text": "hello"})
	assert.Equal(t, int32(apperrors.CodeLLMFailed), res.Error)
}

func TestSpeechHandler(t *testing.T) {
	configurePathResolverForTest(t)
	env := newTestEnv(t)
	env.tts.On("Configured").Return(true)
	env.tts.On("Text2Speech", mock.Anything, "hello", types.VoiceOptions{Model: "cosyvoice-v2", Voice: "longwan"}, mock.Anything).Return(nil)

	_, res := doJSON(t, env.router, http.MethodPost, "/api/speech", map[string]string{
		"text": "hello", "voiceStyle": "longwan", "voiceModel": "cosyvoice-v2",
	})
	require.Equal(t, int32(0), res.Error, res.Msg)
	assert.Regexp(t, `^/audio/speech-[0-9a-f]{32}\.mp3$`, dataAs[map[string]string](t, res)["audioUrl"])
}

func TestVideoHandler_Modes(t *testing.T) {
	env := newTestEnv(t)

	_, res := doJSON(t, env.router, http.MethodPost, "/api/video", map[string]string{"text": "Slide", "mode": "lecture"})
	require.Equal(t, int32(0), res.Error)
	assert.Equal(t, "https://via.placeholder.com/800x450?text=Slide...", dataAs[types.MediaAsset](t, res).ImageUrl)

	_, res = doJSON(t, env.router, http.MethodPost, "/api/video", map[string]string{"text": "x", "mode": "gif"})
	assert.Equal(t, int32(apperrors.CodeInvalidParams), res.Error)

	env.video.On("Configured").Return(true)
	env.video.On("SearchVideos", mock.Anything, mock.Anything).Return(&types.VideoSearchResult{}, nil)
	_, res = doJSON(t, env.router, http.MethodPost, "/api/video", map[string]string{"text": "ocean"})
	assert.Equal(t, int32(apperrors.CodeVideoNotFound), res.Error)
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)
	code, res := doJSON(t, env.router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int32(0), res.Error)
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.chat.On("Configured").Return(true)
	env.chat.On("ChatCompletion", mock.Anything, mock.Anything).Return("not json", nil)

	_, res := doJSON(t, env.router, http.MethodPost, "/api/session", map[string]any{"text": "First. Second.", "mode": "lecture"})
	require.Equal(t, int32(0), res.Error, res.Msg)
	sess := dataAs[session.Session](t, res)
	require.Len(t, sess.Segments, 2)
	assert.Equal(t, types.MediaModeLecture, sess.Mode)

	_, res = doJSON(t, env.router, http.MethodGet, "/api/session", nil)
	list := dataAs[map[string][]map[string]any](t, res)["sessions"]
	require.Len(t, list, 1)
	assert.EqualValues(t, 2, list[0]["segmentCount"])

	segPath := "/api/session/" + sess.Id + "/segment/" + sess.Segments[0].Id
	_, res = doJSON(t, env.router, http.MethodPut, segPath, map[string]string{"lectureText": "edited"})
	require.Equal(t, int32(0), res.Error)
	assert.Equal(t, "edited", dataAs[session.Session](t, res).Segments[0].LectureText)

	_, res = doJSON(t, env.router, http.MethodPost, segPath+"/media", nil)
	require.Equal(t, int32(0), res.Error, res.Msg)
	assert.Equal(t, types.MediaKindImage, dataAs[session.Session](t, res).Segments[0].Media.Kind)

	_, res = doJSON(t, env.router, http.MethodPut, "/api/session/"+sess.Id+"/mode", map[string]string{"mode": "search"})
	require.Equal(t, int32(0), res.Error)
	assert.Equal(t, types.MediaModeSearch, dataAs[session.Session](t, res).Mode)

	_, res = doJSON(t, env.router, http.MethodDelete, "/api/session/"+sess.Id, nil)
	require.Equal(t, int32(0), res.Error)

	_, res = doJSON(t, env.router, http.MethodGet, "/api/session/"+sess.Id, nil)
	assert.Equal(t, int32(apperrors.CodeNotFound), res.Error)
}

func TestServeAudio(t *testing.T) {
	tempDir := configurePathResolverForTest(t)
	env := newTestEnv(t)

	audioDir := filepath.Join(tempDir, "output", "audio")
	require.NoError(t, os.MkdirAll(audioDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "speech-1.mp3"), []byte("ID3 audio"), 0o644))

	req, _ := http.NewRequest(http.MethodGet, "/audio/speech-1.mp3", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ID3 audio", w.Body.String())

	req, _ = http.NewRequest(http.MethodHead, "/audio/speech-1.mp3", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodHead, "/audio/missing.mp3", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeAudio_PathTraversalBlocked(t *testing.T) {
	configurePathResolverForTest(t)
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/audio/../../etc/passwd", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "Traversal path should be blocked")
}
