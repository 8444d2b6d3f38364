package location

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock/internal/shared/apperror"
	"timeclock/internal/shared/response"
)

type LocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	RadiusM   float64  `json:"radiusM"`
	Mode      string   `json:"mode"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List feeds the dashboard dropdowns: device registration and employee
// location assignment both pick from this.
func (h *Handler) List(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	res := make([]LocationResponse, len(rows))
	for i, l := range rows {
		res[i] = LocationResponse{
			ID:        l.ID.String(),
			Name:      l.Name,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			RadiusM:   l.RadiusM,
			Mode:      l.Mode,
		}
	}
	response.Success(c, http.StatusOK, res, nil)
}
