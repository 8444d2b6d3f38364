package timesheet

import (
	"net/http"
	"strconv"

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

func actorFrom(c *gin.Context) Actor {
	locations, _ := c.Get("admin_locations")
	scoped, _ := locations.([]string)
	return Actor{
		ID:        c.GetString("admin_id"),
		Role:      c.GetString("admin_role"),
		Locations: scoped,
	}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "31"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	q := Query{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	}

	resp, err := h.service.List(c.Request.Context(), actorFrom(c), c.Param("id"), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.Edit(c.Request.Context(), actorFrom(c), c.Param("id"), req); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, EditResponse{Success: true}, nil)
}
