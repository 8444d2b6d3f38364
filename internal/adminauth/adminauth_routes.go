package adminauth

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
	"timeclock/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authority *session.Authority) {
	admin := r.Group("/admin")
	{
		admin.POST("/setup", h.Setup)
		admin.POST("/login", middleware.RateLimitByIP(1, 5), h.Login)
		admin.POST("/logout", h.Logout)
		admin.GET("/me", middleware.AdminAuth(authority), h.Me)
	}
}
