package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mikawi/g2scv/api/handlers"
	"github.com/mikawi/g2scv/api/middleware"
)

// SetupRoutes wires all HTTP routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handlers.HealthCheck)

	cv := v1.Group("/cv")
	{
		cv.POST("/parse", h.CV.ParseCV)
		cv.POST("/batch", h.CV.ParseBatch)
		cv.GET("/status/:taskId", h.CV.GetStatus)
		cv.GET("/result/:taskId", h.CV.GetResult)
		cv.DELETE("/task/:taskId", h.CV.CancelTask)
	}
}
