package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"storykura/internal/handler"
	"storykura/log"
)

func SetupRouter(r *gin.Engine) {
	RegisterRoutes(r, handler.NewHandler())
}

func RegisterRoutes(r *gin.Engine, hdl handler.Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", hdl.Health)
		api.POST("/text/breakdown", hdl.Breakdown)
		api.POST("/text", hdl.Rewrite)
		api.POST("/speech", hdl.Speech)
		api.POST("/video", hdl.Video)
		// 会话
		api.POST("/session", hdl.CreateSession)
		api.GET("/session", hdl.ListSessions)
		api.GET("/session/:sessionId", hdl.GetSession)
		api.DELETE("/session/:sessionId", hdl.DeleteSession)
		api.PUT("/session/:sessionId/mode", hdl.SetSessionMode)
		api.POST("/session/:sessionId/speech", hdl.SynthesizeAll)
		api.PUT("/session/:sessionId/segment/:segmentId", hdl.EditSegment)
		api.POST("/session/:sessionId/segment/:segmentId/speech", hdl.SynthesizeSegment)
		api.POST("/session/:sessionId/segment/:segmentId/media", hdl.AttachSegmentMedia)
	}

	r.GET("/audio/*filepath", hdl.ServeAudio)
	r.HEAD("/audio/*filepath", hdl.ServeAudio)

	// the editor build is optional; the API works without it
	if _, err := os.Stat("static"); err == nil {
		log.GetLogger().Info("Using local static directory")
		r.Static("/static", "static")
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/static")
		})
	}
}
