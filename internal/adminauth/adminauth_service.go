package adminauth

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"timeclock/internal/bootstrap"
	"timeclock/internal/session"
	"timeclock/internal/shared/apperror"
)

var (
	errInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	errSetupClosed = apperror.New(
		apperror.CodeForbidden,
		"Initial setup is already complete",
		http.StatusForbidden,
	)
)

//go:generate mockgen -source=adminauth_service.go -destination=mock/adminauth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (token string, resp AdminResponse, err error)
	Setup(ctx context.Context, req SetupRequest) (AdminResponse, error)
	Me(ctx context.Context, adminID string) (AdminResponse, error)
}

type service struct {
	repo      Repository
	authority *session.Authority
	audit     bootstrap.AuditLogger

	// The setup endpoint is world-reachable until the first admin
	// exists. Once any admin is seen the positive answer is cached for
	// the life of the process; singleflight collapses the cold-start
	// stampede on the count query.
	sf          *singleflight.Group
	adminExists atomic.Bool
}

func NewService(repo Repository, authority *session.Authority, audit bootstrap.AuditLogger) Service {
	return &service{
		repo:      repo,
		authority: authority,
		audit:     audit,
		sf:        &singleflight.Group{},
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, AdminResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", AdminResponse{}, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "ADMIN_LOGIN_REJECTED",
			Subject: u.ID.String(),
			Message: "Password mismatch",
		})
		return "", AdminResponse{}, errInvalidCredentials
	}

	token, err := s.authority.Issue(session.KindAdmin, u.ID.String(), session.Extra{
		Role:      u.Role,
		Locations: u.LocationNames(),
	})
	if err != nil {
		return "", AdminResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "could not issue admin token", http.StatusInternalServerError)
	}

	return token, mapToResponse(u), nil
}

func (s *service) Setup(ctx context.Context, req SetupRequest) (AdminResponse, error) {
	exists, err := s.anyAdminExists(ctx)
	if err != nil {
		return AdminResponse{}, err
	}
	if exists {
		return AdminResponse{}, errSetupClosed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AdminResponse{}, err
	}

	u := &AdminUser{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     RoleSuperAdmin,
		Active:   true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return AdminResponse{}, err
	}

	// The creation itself settles the question for good.
	s.adminExists.Store(true)

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "ADMIN_SETUP",
		Subject: u.ID.String(),
		Message: "Initial administrator created",
		Meta:    map[string]any{"email": u.Email},
	})

	return mapToResponse(u), nil
}

func (s *service) Me(ctx context.Context, adminID string) (AdminResponse, error) {
	id, err := uuid.Parse(adminID)
	if err != nil {
		return AdminResponse{}, apperror.ErrUnauthorized
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AdminResponse{}, apperror.ErrUnauthorized
	}

	return mapToResponse(u), nil
}

func (s *service) anyAdminExists(ctx context.Context) (bool, error) {
	if s.adminExists.Load() {
		return true, nil
	}

	v, err, _ := s.sf.Do("admin-exists", func() (any, error) {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return false, err
	}

	exists := v.(bool)
	if exists {
		s.adminExists.Store(true)
	}
	return exists, nil
}
