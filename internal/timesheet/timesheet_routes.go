package timesheet

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
	"timeclock/internal/rbac"
	"timeclock/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authority *session.Authority, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AdminAuth(authority))
	{
		employees.GET("/:id/timesheet", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.List)
		employees.PATCH("/:id/timesheet", middleware.RBACAuthorize(rbacService, "timesheet", "update"), h.Edit)
	}
}
