package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PunchesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_punches_recorded_total",
		Help: "Punch events appended, by kind.",
	}, []string{"kind"})

	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_auth_failures_total",
		Help: "Token verification failures, by token kind and reason.",
	}, []string{"kind", "reason"})

	GeofenceRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timeclock_geofence_rejections_total",
		Help: "Hard-mode geofence rejections of clock-in attempts.",
	})

	TimesheetEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeclock_timesheet_edits_total",
		Help: "Manual timesheet corrections, by applied action.",
	}, []string{"action"})
)

// RegisterRoutes exposes the default registry on /metrics.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
