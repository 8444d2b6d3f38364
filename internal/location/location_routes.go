package location

import (
	"github.com/gin-gonic/gin"

	"timeclock/internal/middleware"
	"timeclock/internal/session"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authority *session.Authority) {
	locations := r.Group("/locations")
	locations.Use(middleware.AdminAuth(authority))
	{
		locations.GET("", h.List)
	}
}
