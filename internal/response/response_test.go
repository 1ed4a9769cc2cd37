package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "storykura/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	ok := FromError(nil)
	assert.Equal(t, int32(0), ok.Error)

	app := FromError(apperrors.WrapWithDetail(apperrors.CodeVideoNotFound, "未找到匹配的视频", "ocean", nil))
	assert.Equal(t, int32(apperrors.CodeVideoNotFound), app.Error)
	assert.Equal(t, "未找到匹配的视频", app.Msg)
	assert.Equal(t, "ocean", app.Detail)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, int32(apperrors.CodeUnknown), plain.Error)
	assert.Equal(t, "boom", plain.Msg)
}

func TestErrorResponseKeepsStatusOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponse(c, apperrors.ErrEmptyText)

	assert.Equal(t, http.StatusOK, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int32(apperrors.CodeInvalidParams), body.Error)
	assert.Nil(t, body.Data)
}
