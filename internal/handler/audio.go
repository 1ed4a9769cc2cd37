package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykura/internal/response"
	"storykura/log"
)

// ServeAudio serves generated speech files for GET and HEAD /audio/*filepath.
func (h Handler) ServeAudio(c *gin.Context) {
	requested := c.Param("filepath")
	localPath, ok := resolveAudioPath(requested)
	if !ok {
		log.GetLogger().Warn("blocked audio path", zap.String("path", requested))
		response.AbortWithStatus(c, http.StatusForbidden, "非法的文件路径")
		return
	}

	info, err := os.Stat(localPath)
	if err != nil || info.IsDir() {
		response.AbortWithStatus(c, http.StatusNotFound, "文件不存在")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.File(localPath)
}
