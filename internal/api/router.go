package api

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware())
	r.Use(RequestLoggingMiddleware(h.logger))

	r.GET("/", h.Health)
	r.GET("/ws/alerts", h.AlertStream)

	api := r.Group(h.cfg.API.BasePath)
	{
		// Dashboard
		api.GET("/dashboard/summary", h.DashboardSummary)
		api.GET("/dashboard/trends", h.DashboardTrends)

		// Forecasting
		api.GET("/predictions", h.Predictions)

		// Agent
		api.POST("/agent/run", h.AgentRun)
		api.GET("/agent/status", h.AgentStatus)
		api.POST("/agent/approve/:id", h.AgentApprove)
		api.POST("/agent/reject/:id", h.AgentReject)
		api.GET("/agent/analysis", h.AgentAnalysis)
		api.GET("/agent/log", h.AgentLog)

		// Alerts and metadata
		api.GET("/alerts", h.Alerts)
		api.GET("/hospitals", h.Hospitals)
		api.GET("/live-data", h.LiveData)
		api.GET("/live-data/status", h.LiveDataStatus)

		// Uploaded datasets
		api.POST("/upload", h.Upload)
		api.GET("/upload/status", h.UploadStatus)
		api.GET("/upload/template", h.UploadTemplate)
		api.DELETE("/upload/:hospital_id", h.UploadDelete)
	}
	return r
}
