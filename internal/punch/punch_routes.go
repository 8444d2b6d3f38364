package punch

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
	"timeclock/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authority *session.Authority, consumer session.Consumer) {
	emp := r.Group("/employee")
	emp.Use(middleware.DeviceAuth(authority))
	{
		emp.POST("/login", middleware.RateLimitByIP(2, 5), h.Login)
		emp.POST("/clock", middleware.WorkerAuth(authority, consumer), h.Clock)
	}
}
