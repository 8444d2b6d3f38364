package punch

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"timeclock/internal/shared/apperror"
	"timeclock/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == apperror.CodeGeofenceViolation {
		// Machine-readable flag so the kiosk can render the rejection
		// distinctly from a plain permission error.
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, gin.H{
			"geofenceViolation": true,
		})
		return
	}

	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	token, resp, err := h.service.Login(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	setWorkerCookie(c, token, 300)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Clock(c *gin.Context) {
	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	cmd := ClockCommand{
		EmployeeID:     c.GetString("employee_id"),
		JTI:            c.GetString("worker_jti"),
		Pin:            c.GetString("worker_pin"),
		DeviceID:       c.GetString("device_id"),
		DeviceLocation: c.GetString("device_location"),
		Request:        req,
	}

	resp, err := h.service.Clock(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// One punch per authentication: drop the worker cookie so the kiosk
	// returns to the PIN screen for the next worker.
	setWorkerCookie(c, "", -1)
	response.Success(c, http.StatusCreated, resp, nil)
}

func setWorkerCookie(c *gin.Context, token string, maxAge int) {
	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "worker_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})
}
