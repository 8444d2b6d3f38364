package device

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
	"timeclock/internal/rbac"
	"timeclock/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authority *session.Authority, rbacService rbac.Service) {
	devices := r.Group("/device")
	devices.Use(middleware.AdminAuth(authority))
	{
		devices.POST("/register", middleware.RBACAuthorize(rbacService, "device", "create"), h.Register)
		devices.GET("/manage", middleware.RBACAuthorize(rbacService, "device", "read"), h.List)
		devices.PATCH("/manage", middleware.RBACAuthorize(rbacService, "device", "update"), h.Manage)
	}
}
