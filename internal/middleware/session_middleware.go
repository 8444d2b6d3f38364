package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"timeclock/internal/metrics"
	"timeclock/internal/session"
	"timeclock/internal/shared/response"
)

const (
	DeviceCookie = "device_token"
	WorkerCookie = "worker_token"
	AdminCookie  = "admin_token"
)

func tokenFrom(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	// Bearer fallback for non-browser clients.
	authHeader := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
		return token
	}
	return ""
}

func rejectUnauthorized(c *gin.Context, kind session.Kind, token string) {
	reason := session.FailInvalid
	if token == "" {
		reason = session.FailMissing
	}
	metrics.AuthFailures.WithLabelValues(string(kind), string(reason)).Inc()
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
	c.Abort()
}

// DeviceAuth requires a valid device token. The device row's lifecycle
// status is checked downstream where the repository is available.
func DeviceAuth(authority *session.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c, DeviceCookie)
		claims, ok := authority.Verify(session.KindDevice, token)
		if !ok {
			rejectUnauthorized(c, session.KindDevice, token)
			return
		}

		c.Set("device_id", claims.Subject)
		c.Set("device_location", claims.Location)
		c.Next()
	}
}

// WorkerAuth requires a live, unconsumed worker session. A jti that has
// already authorized a punch is as dead as an expired token.
func WorkerAuth(authority *session.Authority, consumer session.Consumer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c, WorkerCookie)
		claims, ok := authority.Verify(session.KindWorker, token)
		if !ok {
			rejectUnauthorized(c, session.KindWorker, token)
			return
		}

		used, err := consumer.IsConsumed(c.Request.Context(), claims.JTI)
		if err == nil && used {
			metrics.AuthFailures.WithLabelValues(string(session.KindWorker), "reused").Inc()
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session already used", nil)
			c.Abort()
			return
		}

		c.Set("employee_id", claims.Subject)
		c.Set("worker_jti", claims.JTI)
		c.Set("worker_pin", claims.Pin)
		c.Next()
	}
}

// AdminAuth requires a valid admin token and exposes role and location
// scope to downstream handlers.
func AdminAuth(authority *session.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c, AdminCookie)
		claims, ok := authority.Verify(session.KindAdmin, token)
		if !ok {
			rejectUnauthorized(c, session.KindAdmin, token)
			return
		}

		c.Set("admin_id", claims.Subject)
		c.Set("admin_role", claims.Role)
		c.Set("admin_locations", claims.Locations)
		c.Next()
	}
}
