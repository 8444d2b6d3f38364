package timesheet_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"timeclock/internal/shared/apperror"
	"timeclock/internal/timesheet"
	mock_timesheet "timeclock/internal/timesheet/mock"
)

func adminContext(w *httptest.ResponseRecorder, req *http.Request, employeeID string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: employeeID}}
	c.Set("admin_id", "admin-1")
	c.Set("admin_role", "admin")
	c.Set("admin_locations", []string{"North Melbourne"})
	return c
}

func TestTimesheetHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		total := 450
		svc := mock_timesheet.NewMockService(ctrl)
		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), employeeID, gomock.Any()).
			DoAndReturn(func(_ any, actor timesheet.Actor, _ string, q timesheet.Query) (timesheet.ListResponse, error) {
				assert.Equal(t, "admin-1", actor.ID)
				assert.Equal(t, "admin", actor.Role)
				assert.Equal(t, 5, q.Limit)
				assert.Equal(t, "total", q.SortBy)
				return timesheet.ListResponse{
					Timesheets: []timesheet.RowResponse{{
						Date:         "2026-01-05",
						BreakMinutes: 30,
						TotalMinutes: &total,
						TotalHours:   "7h 30m",
					}},
					Total: 1,
				}, nil
			})

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/employees/"+employeeID+"/timesheet?limit=5&sortBy=total", nil)

		h.List(adminContext(w, req, employeeID))

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Ok   bool                   `json:"ok"`
			Data timesheet.ListResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.EqualValues(t, 1, body.Data.Total)
		assert.Equal(t, "7h 30m", body.Data.Timesheets[0].TotalHours)
	})

	t.Run("forbidden for out-of-scope actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_timesheet.NewMockService(ctrl)
		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), employeeID, gomock.Any()).
			Return(timesheet.ListResponse{}, apperror.ErrForbidden)

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/employees/"+employeeID+"/timesheet", nil)

		h.List(adminContext(w, req, employeeID))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTimesheetHandler_Edit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_timesheet.NewMockService(ctrl)
		svc.EXPECT().
			Edit(gomock.Any(), gomock.Any(), employeeID, timesheet.EditRequest{
				Date:    "2026-01-05",
				ClockIn: "06:00",
			}).
			Return(nil)

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch,
			"/employees/"+employeeID+"/timesheet",
			strings.NewReader(`{"date":"2026-01-05","clockIn":"06:00"}`))
		req.Header.Set("Content-Type", "application/json")

		h.Edit(adminContext(w, req, employeeID))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("missing date fails validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_timesheet.NewMockService(ctrl)

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch,
			"/employees/"+employeeID+"/timesheet",
			strings.NewReader(`{"clockIn":"06:00"}`))
		req.Header.Set("Content-Type", "application/json")

		h.Edit(adminContext(w, req, employeeID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error maps to status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := mock_timesheet.NewMockService(ctrl)
		svc.EXPECT().
			Edit(gomock.Any(), gomock.Any(), employeeID, gomock.Any()).
			Return(apperror.ErrNotFound)

		h := timesheet.NewHandler(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch,
			"/employees/"+employeeID+"/timesheet",
			strings.NewReader(`{"date":"2026-01-05"}`))
		req.Header.Set("Content-Type", "application/json")

		h.Edit(adminContext(w, req, employeeID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
