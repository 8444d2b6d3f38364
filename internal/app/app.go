package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timeclock/internal/adminauth"
	"timeclock/internal/device"
	"timeclock/internal/employee"
	"timeclock/internal/location"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/metrics"
	"timeclock/internal/middleware"
	"timeclock/internal/punch"
	"timeclock/internal/shared/connection"
)

// BuildApp connects infrastructure, migrates the schema and registers
// every module's routes on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("✅ Database connection established")

	if err := gormDB.AutoMigrate(
		&location.Location{},
		&employee.Employee{},
		&device.Device{},
		&punch.PunchEvent{},
		&adminauth.AdminUser{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	if err := kafka.Migrate(context.Background(), sqlDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("✅ Redis connection established")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	router.Use(middleware.RequestID())
	metrics.RegisterRoutes(router)

	return registerModules(router, gormDB, redisClient, []byte(secret))
}
