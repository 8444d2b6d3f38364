package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/internal/adminauth"
	"timeclock/internal/bootstrap"
	"timeclock/internal/device"
	"timeclock/internal/employee"
	"timeclock/internal/location"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/punch"
	"timeclock/internal/rbac"
	"timeclock/internal/session"
	"timeclock/internal/timesheet"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	secret []byte,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	locationRepo := location.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	deviceRepo := device.NewRepository(gormDB)
	punchRepo := punch.NewRepository(gormDB)
	adminRepo := adminauth.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Session core ---
	authority := session.NewAuthority(secret, zap.L())
	consumer := session.NewRedisConsumer(rdb)
	lockout := punch.NewRedisLockout(rdb)
	audit := bootstrap.NewStdoutAuditLogger()

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	adminService := adminauth.NewService(adminRepo, authority, audit)
	deviceService := device.NewService(db, deviceRepo, outboxRepo, authority, audit)
	punchService := punch.NewService(db, punchRepo, employeeRepo, deviceRepo, outboxRepo, authority, consumer, lockout, audit)
	timesheetService := timesheet.NewService(punchRepo, employeeRepo, audit)

	// --- Handlers ---
	adminHandler := adminauth.NewHandler(adminService)
	deviceHandler := device.NewHandler(deviceService)
	punchHandler := punch.NewHandler(punchService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	locationHandler := location.NewHandler(locationRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		adminauth.RegisterRoutes(api, adminHandler, authority)
		device.RegisterRoutes(api, deviceHandler, authority, rbacService)
		punch.RegisterRoutes(api, punchHandler, authority, consumer)
		timesheet.RegisterRoutes(api, timesheetHandler, authority, rbacService)
		location.RegisterRoutes(api, locationHandler, authority)
	}

	return nil
}
