package device

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"timeclock/internal/bootstrap"
	"timeclock/internal/events"
	"timeclock/internal/messaging/kafka"
	"timeclock/internal/session"
	"timeclock/internal/shared/apperror"
	"timeclock/internal/shared/contextutil"
)

//go:generate mockgen -source=device_service.go -destination=mock/device_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, adminID string, req RegisterRequest) (RegisterResponse, error)
	List(ctx context.Context) ([]DeviceResponse, error)
	Manage(ctx context.Context, adminID string, req ManageRequest) (DeviceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	authority *session.Authority
	audit     bootstrap.AuditLogger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	authority *session.Authority,
	audit bootstrap.AuditLogger,
) Service {
	return &service{db: db, repo: repo, outbox: outbox, authority: authority, audit: audit}
}

func (s *service) Register(ctx context.Context, adminID string, req RegisterRequest) (RegisterResponse, error) {
	admin, err := uuid.Parse(adminID)
	if err != nil {
		return RegisterResponse{}, apperror.ErrUnauthorized
	}

	row := &Device{
		ID:           uuid.New(),
		Name:         req.Name,
		Location:     req.Location,
		RegisteredBy: admin,
		Status:       StatusActive,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return RegisterResponse{}, err
	}

	token, err := s.authority.Issue(session.KindDevice, row.ID.String(), session.Extra{
		Location: row.Location,
	})
	if err != nil {
		return RegisterResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "could not issue device token", http.StatusInternalServerError)
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "DEVICE_REGISTERED",
		Actor:   adminID,
		Subject: row.ID.String(),
		Message: "Kiosk device registered",
		Meta:    map[string]any{"location": row.Location},
	})

	return RegisterResponse{Device: mapToResponse(*row), Token: token}, nil
}

func (s *service) List(ctx context.Context) ([]DeviceResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]DeviceResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) Manage(ctx context.Context, adminID string, req ManageRequest) (DeviceResponse, error) {
	id, err := uuid.Parse(req.DeviceID)
	if err != nil {
		return DeviceResponse{}, apperror.ErrInvalidInput
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeviceResponse{}, apperror.ErrNotFound
		}
		return DeviceResponse{}, err
	}

	switch req.Action {
	case ActionEnable:
		// Revoked is terminal: a compromised kiosk never comes back.
		if row.Status == StatusRevoked {
			return DeviceResponse{}, apperror.New(
				apperror.CodeInvalidState,
				"A revoked device cannot be re-enabled",
				http.StatusBadRequest,
			)
		}
		row.Status = StatusActive

	case ActionDisable:
		if row.Status == StatusRevoked {
			return DeviceResponse{}, apperror.New(
				apperror.CodeInvalidState,
				"Device is already revoked",
				http.StatusBadRequest,
			)
		}
		row.Status = StatusDisabled

	case ActionRevoke:
		return s.revoke(ctx, adminID, row, req.Reason)

	default:
		return DeviceResponse{}, apperror.ErrInvalidInput
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return DeviceResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "DEVICE_" + req.Action,
		Actor:   adminID,
		Subject: row.ID.String(),
		Message: "Device lifecycle change",
		Meta:    map[string]any{"status": row.Status},
	})

	return mapToResponse(*row), nil
}

// revoke stamps revocation metadata and publishes the event through
// the outbox in the same transaction as the status change.
func (s *service) revoke(ctx context.Context, adminID string, row *Device, reason string) (DeviceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeviceResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	admin, _ := uuid.Parse(adminID)
	row.Status = StatusRevoked
	row.RevokedBy = &admin
	row.RevokedAt = &now
	if reason != "" {
		row.RevokeReason = &reason
	}

	if err := s.repo.WithTx(tx).Update(ctx, row); err != nil {
		return DeviceResponse{}, err
	}

	payload, err := json.Marshal(events.DeviceRevokedEvent{
		EventType:  "device.revoked",
		DeviceID:   row.ID.String(),
		Location:   row.Location,
		RevokedBy:  adminID,
		Reason:     reason,
		OccurredAt: now,
	})
	if err != nil {
		return DeviceResponse{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "device",
		AggregateID:   row.ID.String(),
		EventType:     "device.revoked",
		Topic:         events.DeviceRevokedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return DeviceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeviceResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "DEVICE_REVOKED",
		Actor:   adminID,
		Subject: row.ID.String(),
		Message: "Device identity revoked",
		Meta:    map[string]any{"reason": reason},
	})

	return mapToResponse(*row), nil
}

func mapToResponse(d Device) DeviceResponse {
	resp := DeviceResponse{
		ID:           d.ID.String(),
		Name:         d.Name,
		Location:     d.Location,
		Status:       d.Status,
		RegisteredBy: d.RegisteredBy.String(),
		RevokeReason: d.RevokeReason,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.RevokedBy != nil {
		v := d.RevokedBy.String()
		resp.RevokedBy = &v
	}
	if d.RevokedAt != nil {
		v := d.RevokedAt.Format(time.RFC3339)
		resp.RevokedAt = &v
	}
	return resp
}
