package punch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/internal/bootstrap"
	"timeclock/internal/device"
	"timeclock/internal/employee"
	"timeclock/internal/events"
	"timeclock/internal/geofence"
	"timeclock/internal/location"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/metrics"
	"timeclock/internal/session"
	"timeclock/internal/shared/apperror"
	"timeclock/internal/shared/contextutil"
)

var (
	errInvalidPin = apperror.New(apperror.CodeUnauthorized, "Invalid PIN", http.StatusUnauthorized)

	errTooManyAttempts = apperror.New(
		apperror.CodeRateLimited,
		"Too many failed attempts, try again shortly",
		http.StatusTooManyRequests,
	)

	errCoordinateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A coordinate is required to clock in at this location",
		http.StatusBadRequest,
	)

	errOutOfSequence = apperror.New(
		apperror.CodeInvalidState,
		"Punch is out of sequence for today",
		http.StatusConflict,
	)
)

// ClockCommand carries the identities the middleware verified along
// with the punch intent itself.
type ClockCommand struct {
	EmployeeID     string
	JTI            string
	Pin            string
	DeviceID       string
	DeviceLocation string
	Request        ClockRequest
}

//go:generate mockgen -source=punch_service.go -destination=mock/punch_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, clientIP string, req LoginRequest) (token string, resp LoginResponse, err error)
	Clock(ctx context.Context, cmd ClockCommand) (ClockResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	deviceRepo   device.Repository
	outbox       kafka.OutboxRepository
	authority    *session.Authority
	consumer     session.Consumer
	lockout      Lockout
	audit        bootstrap.AuditLogger
	now          func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	deviceRepo device.Repository,
	outbox kafka.OutboxRepository,
	authority *session.Authority,
	consumer session.Consumer,
	lockout Lockout,
	audit bootstrap.AuditLogger,
) Service {
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		deviceRepo:   deviceRepo,
		outbox:       outbox,
		authority:    authority,
		consumer:     consumer,
		lockout:      lockout,
		audit:        audit,
		now:          time.Now,
	}
}

func (s *service) Login(ctx context.Context, clientIP string, req LoginRequest) (string, LoginResponse, error) {
	if locked, err := s.lockout.IsLocked(ctx, clientIP); err == nil && locked {
		return "", LoginResponse{}, errTooManyAttempts
	}

	emp, err := s.employeeRepo.FindByPin(ctx, req.Pin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.lockout.RecordFailure(ctx, clientIP)
			s.audit.Log(ctx, bootstrap.AuditLog{
				Action:  "PIN_REJECTED",
				Message: "Unknown or inactive PIN",
				Meta:    map[string]any{"ip": clientIP},
			})
			return "", LoginResponse{}, errInvalidPin
		}
		return "", LoginResponse{}, err
	}
	_ = s.lockout.Clear(ctx, clientIP)

	today := s.now().Format(DateLayout)
	dayEvents, err := s.repo.FindByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return "", LoginResponse{}, err
	}
	stage := DeriveStage(dayEvents)

	candidates := location.Candidates(emp.Locations)
	warning := false
	detected := ""

	if req.Lat != nil && req.Lng != nil && len(candidates) > 0 {
		// Hard enforcement applies only while the next transition would
		// be a clock-in; mid-shift logins must never strand the worker.
		decision := geofence.Evaluate(*req.Lat, *req.Lng, candidates, stage == StageNotStarted)
		if !decision.Admitted() {
			metrics.GeofenceRejections.Inc()
			return "", LoginResponse{}, apperror.ErrGeofenceViolation
		}
		warning = decision.Status == geofence.StatusWarned
		detected = decision.DetectedLocation
	} else if len(candidates) > 0 {
		warning = true
	}

	token, err := s.authority.Issue(session.KindWorker, emp.ID.String(), session.Extra{Pin: emp.Pin})
	if err != nil {
		return "", LoginResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "could not issue worker session", http.StatusInternalServerError)
	}

	punches := make([]PunchResponse, len(dayEvents))
	for i, e := range dayEvents {
		punches[i] = mapToPunchResponse(e)
	}

	return token, LoginResponse{
		Employee:         EmployeeSnapshot{ID: emp.ID.String(), FullName: emp.FullName},
		Punches:          punches,
		Stage:            string(stage),
		GeofenceWarning:  warning,
		DetectedLocation: detected,
	}, nil
}

func (s *service) Clock(ctx context.Context, cmd ClockCommand) (ClockResponse, error) {
	employeeID, err := uuid.Parse(cmd.EmployeeID)
	if err != nil {
		return ClockResponse{}, apperror.ErrUnauthorized
	}

	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClockResponse{}, apperror.ErrNotFound
		}
		return ClockResponse{}, err
	}

	// The PIN echoed in the token must still belong to this employee;
	// an admin may have rotated it since login.
	if cmd.Pin != "" && cmd.Pin != emp.Pin {
		return ClockResponse{}, apperror.ErrUnauthorized
	}

	dev, err := s.resolveDevice(ctx, cmd.DeviceID)
	if err != nil {
		return ClockResponse{}, err
	}

	req := cmd.Request
	if !ValidKind(req.Type) {
		return ClockResponse{}, apperror.ErrInvalidInput
	}

	now := s.now()
	date := req.Date
	if date == "" {
		date = now.Format(DateLayout)
	}
	timeStr := req.Time
	if timeStr == "" {
		timeStr = now.Format(TimeLayout)
	}

	dayEvents, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return ClockResponse{}, err
	}
	if stage := DeriveStage(dayEvents); !CanTransition(stage, req.Type) {
		return ClockResponse{}, errOutOfSequence
	}

	candidates := location.Candidates(emp.Locations)
	hasCoord := req.Lat != nil && req.Lng != nil

	if req.Type == KindIn && !hasCoord && anyHard(candidates) {
		return ClockResponse{}, errCoordinateRequired
	}

	warned := false
	detected := ""
	if hasCoord && len(candidates) > 0 {
		decision := geofence.Evaluate(*req.Lat, *req.Lng, candidates, req.Type == KindIn)
		if !decision.Admitted() {
			metrics.GeofenceRejections.Inc()
			return ClockResponse{}, apperror.ErrGeofenceViolation
		}
		warned = decision.Status == geofence.StatusWarned
		detected = decision.DetectedLocation
	}

	where := "Unknown"
	if hasCoord {
		where = fmt.Sprintf("%.5f, %.5f", *req.Lat, *req.Lng)
	}

	event := &PunchEvent{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		Pin:              emp.Pin,
		Kind:             req.Type,
		Date:             date,
		Time:             timeStr,
		ImageURL:         req.ImageURL,
		Latitude:         req.Lat,
		Longitude:        req.Lng,
		Where:            where,
		Flagged:          req.ImageURL == "" || !hasCoord || warned,
		DetectedLocation: detected,
		DeviceID:         &dev.ID,
	}

	if err := s.appendEvent(ctx, event); err != nil {
		return ClockResponse{}, err
	}

	// The session dies with the punch, even if the response is lost:
	// "punch recorded but response lost" must not double-authorize.
	if err := s.consumer.Consume(ctx, cmd.JTI, session.WorkerTTL); err != nil {
		contextutil.GetLogger(ctx, zap.L()).Warn("worker session consume failed",
			zap.String("jti", cmd.JTI),
			zap.Error(err),
		)
	}

	metrics.PunchesRecorded.WithLabelValues(req.Type).Inc()

	return ClockResponse{
		Success: true,
		Type:    req.Type,
		Date:    date,
		Time:    timeStr,
		Flag:    event.Flagged,
	}, nil
}

// resolveDevice rejects tokens whose backing row is no longer active.
// A disabled or revoked kiosk keeps its signed token; the row is what
// an admin can actually pull.
func (s *service) resolveDevice(ctx context.Context, deviceID string) (*device.Device, error) {
	id, err := uuid.Parse(deviceID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	dev, err := s.deviceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.auditDeviceRejected(ctx, deviceID, "unknown device")
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	if !dev.IsActive() {
		s.auditDeviceRejected(ctx, deviceID, "device "+dev.Status)
		return nil, apperror.ErrUnauthorized
	}
	return dev, nil
}

func (s *service) auditDeviceRejected(ctx context.Context, deviceID, reason string) {
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "DEVICE_REJECTED",
		Subject: deviceID,
		Message: "Punch attempt from non-active device",
		Meta:    map[string]any{"reason": reason},
	})
}

// appendEvent writes the punch and its outbox row atomically.
func (s *service) appendEvent(ctx context.Context, event *PunchEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}

	payload, err := json.Marshal(events.PunchRecordedEvent{
		EventType:        "punch.recorded",
		PunchID:          event.ID.String(),
		EmployeeID:       event.EmployeeID.String(),
		DeviceID:         event.DeviceID.String(),
		Kind:             event.Kind,
		Date:             event.Date,
		Time:             event.Time,
		Flagged:          event.Flagged,
		DetectedLocation: event.DetectedLocation,
		OccurredAt:       s.now().UTC(),
	})
	if err != nil {
		return err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "punch",
		AggregateID:   event.EmployeeID.String(),
		EventType:     "punch.recorded",
		Topic:         events.PunchRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return err
	}

	return tx.Commit()
}

func anyHard(candidates []geofence.Candidate) bool {
	for _, c := range candidates {
		if c.Mode == geofence.ModeHard {
			return true
		}
	}
	return false
}
