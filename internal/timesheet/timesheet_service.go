package timesheet

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timeclock/internal/bootstrap"
	"timeclock/internal/employee"
	"timeclock/internal/metrics"
	"timeclock/internal/punch"
	"timeclock/internal/shared/apperror"
)

var errBadDate = apperror.New(
	apperror.CodeInvalidInput,
	"Date must be YYYY-MM-DD",
	http.StatusBadRequest,
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor Actor, employeeID string, q Query) (ListResponse, error)
	Edit(ctx context.Context, actor Actor, employeeID string, req EditRequest) error
}

type service struct {
	punchRepo    punch.Repository
	employeeRepo employee.Repository
	audit        bootstrap.AuditLogger
}

func NewService(punchRepo punch.Repository, employeeRepo employee.Repository, audit bootstrap.AuditLogger) Service {
	return &service{punchRepo: punchRepo, employeeRepo: employeeRepo, audit: audit}
}

func (s *service) List(ctx context.Context, actor Actor, employeeID string, q Query) (ListResponse, error) {
	emp, err := s.resolveEmployee(ctx, actor, employeeID)
	if err != nil {
		return ListResponse{}, err
	}

	events, err := s.punchRepo.FindAllByEmployee(ctx, emp.ID)
	if err != nil {
		return ListResponse{}, err
	}

	rows := BuildRows(events)

	if q.Search != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if strings.Contains(r.Date, q.Search) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := q.Order
	if order == "" {
		order = OrderDesc
	}
	SortRows(rows, sortBy, order)

	total := int64(len(rows))

	offset := q.Offset
	if offset > len(rows) {
		offset = len(rows)
	}
	end := len(rows)
	if q.Limit > 0 && offset+q.Limit < end {
		end = offset + q.Limit
	}

	res := make([]RowResponse, 0, end-offset)
	for _, r := range rows[offset:end] {
		res = append(res, mapToRowResponse(r))
	}

	return ListResponse{Timesheets: res, Total: total}, nil
}

// Edit applies administrator corrections for one day. Only kinds whose
// normalized HH:mm value actually changed are touched, and every touch
// stamps provenance: insert for a manual backfill, update for a
// corrected device punch.
func (s *service) Edit(ctx context.Context, actor Actor, employeeID string, req EditRequest) error {
	emp, err := s.resolveEmployee(ctx, actor, employeeID)
	if err != nil {
		return err
	}

	if _, err := time.Parse(punch.DateLayout, req.Date); err != nil {
		return errBadDate
	}

	events, err := s.punchRepo.FindByEmployeeAndDate(ctx, emp.ID, req.Date)
	if err != nil {
		return err
	}

	rows := BuildRows(events)
	var row Row
	if len(rows) > 0 {
		row = rows[0]
	} else {
		row = Row{Date: req.Date}
	}

	changes := []struct {
		kind     string
		desired  string
		existing *punch.PunchEvent
	}{
		{punch.KindIn, req.ClockIn, row.ClockIn.Event},
		{punch.KindBreak, req.BreakIn, row.BreakIn.Event},
		{punch.KindEndBreak, req.BreakOut, row.BreakOut.Event},
		{punch.KindOut, req.ClockOut, row.ClockOut.Event},
	}

	applied := map[string]int{}

	for _, ch := range changes {
		desired := strings.TrimSpace(ch.desired)

		switch {
		case desired == "" && ch.existing != nil:
			if err := s.punchRepo.Delete(ctx, ch.existing.ID); err != nil {
				return err
			}
			applied["delete"]++

		case desired != "" && ch.existing == nil:
			if Normalize(desired) == "" {
				return apperror.InvalidField(ch.kind)
			}
			if err := s.punchRepo.Create(ctx, &punch.PunchEvent{
				ID:         uuid.New(),
				EmployeeID: emp.ID,
				Pin:        emp.Pin,
				Kind:       ch.kind,
				Date:       req.Date,
				Time:       desired,
				Where:      "Manual entry",
				Source:     punch.SourceInsert,
			}); err != nil {
				return err
			}
			applied["insert"]++

		case desired != "" && ch.existing != nil:
			if Normalize(desired) == "" {
				return apperror.InvalidField(ch.kind)
			}
			// Equal clock times in different encodings are not a change.
			if Normalize(desired) == Normalize(ch.existing.Time) {
				continue
			}
			ch.existing.Time = desired
			ch.existing.Source = punch.SourceUpdate
			if err := s.punchRepo.Update(ctx, ch.existing); err != nil {
				return err
			}
			applied["update"]++
		}
	}

	if len(applied) > 0 {
		for action, n := range applied {
			metrics.TimesheetEdits.WithLabelValues(action).Add(float64(n))
		}
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "TIMESHEET_EDITED",
			Actor:   actor.ID,
			Subject: emp.ID.String(),
			Message: "Manual timesheet correction",
			Meta:    map[string]any{"date": req.Date, "applied": applied},
		})
	}

	return nil
}

// resolveEmployee loads the subject and applies row-level visibility:
// a location-scoped user may only see employees sharing one of their
// home locations.
func (s *service) resolveEmployee(ctx context.Context, actor Actor, employeeID string) (*employee.Employee, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if actor.Role == "user" && !sharesLocation(actor.Locations, emp.LocationNames()) {
		return nil, apperror.ErrForbidden
	}

	return emp, nil
}

func sharesLocation(scope, assigned []string) bool {
	if len(scope) == 0 {
		return false
	}
	for _, s := range scope {
		for _, a := range assigned {
			if s == a {
				return true
			}
		}
	}
	return false
}
