package adminauth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timeclock/internal/adminauth"
	"timeclock/internal/bootstrap"
	"timeclock/internal/location"
	"timeclock/internal/session"
)

type fakeRepo struct {
	byEmail map[string]*adminauth.AdminUser
	byID    map[uuid.UUID]*adminauth.AdminUser
	count   int64
	created []*adminauth.AdminUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: map[string]*adminauth.AdminUser{},
		byID:    map[uuid.UUID]*adminauth.AdminUser{},
	}
}

func (f *fakeRepo) Create(_ context.Context, u *adminauth.AdminUser) error {
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	f.count++
	return nil
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*adminauth.AdminUser, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*adminauth.AdminUser, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Count(_ context.Context) (int64, error) {
	return f.count, nil
}

type nopAudit struct{ entries []bootstrap.AuditLog }

func (n *nopAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	n.entries = append(n.entries, entry)
}

func seedAdmin(t *testing.T, repo *fakeRepo, email, password, role string) *adminauth.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	u := &adminauth.AdminUser{
		ID:       uuid.New(),
		Name:     "Sam Porter",
		Email:    email,
		Password: string(hash),
		Role:     role,
		Active:   true,
		Locations: []location.Location{
			{ID: uuid.New(), Name: "North Melbourne"},
		},
	}
	assert.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestAdminAuthService_Login(t *testing.T) {
	ctx := context.Background()
	authority := session.NewAuthority([]byte("test-secret"), zap.NewNop())

	t.Run("success issues admin token with role and scope", func(t *testing.T) {
		repo := newFakeRepo()
		seedAdmin(t, repo, "sam@example.com", "hunter22", adminauth.RoleAdmin)
		svc := adminauth.NewService(repo, authority, &nopAudit{})

		token, resp, err := svc.Login(ctx, adminauth.LoginRequest{
			Email:    "sam@example.com",
			Password: "hunter22",
		})

		assert.NoError(t, err)
		assert.Equal(t, adminauth.RoleAdmin, resp.Role)
		assert.Equal(t, []string{"North Melbourne"}, resp.Locations)

		claims, ok := authority.Verify(session.KindAdmin, token)
		assert.True(t, ok)
		assert.Equal(t, adminauth.RoleAdmin, claims.Role)
		assert.Equal(t, []string{"North Melbourne"}, claims.Locations)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeRepo()
		seedAdmin(t, repo, "sam@example.com", "hunter22", adminauth.RoleAdmin)
		audit := &nopAudit{}
		svc := adminauth.NewService(repo, authority, audit)

		_, _, err := svc.Login(ctx, adminauth.LoginRequest{
			Email:    "sam@example.com",
			Password: "wrong",
		})

		assert.Error(t, err)
		assert.Len(t, audit.entries, 1)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		repo := newFakeRepo()
		seedAdmin(t, repo, "sam@example.com", "hunter22", adminauth.RoleAdmin)
		svc := adminauth.NewService(repo, authority, &nopAudit{})

		_, _, errUnknown := svc.Login(ctx, adminauth.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
		_, _, errWrong := svc.Login(ctx, adminauth.LoginRequest{Email: "sam@example.com", Password: "nope"})

		assert.Equal(t, errUnknown, errWrong)
	})
}

func TestAdminAuthService_Setup(t *testing.T) {
	ctx := context.Background()
	authority := session.NewAuthority([]byte("test-secret"), zap.NewNop())

	t.Run("creates first super admin", func(t *testing.T) {
		repo := newFakeRepo()
		svc := adminauth.NewService(repo, authority, &nopAudit{})

		resp, err := svc.Setup(ctx, adminauth.SetupRequest{
			Name:     "Sam Porter",
			Email:    "sam@example.com",
			Password: "correct horse",
		})

		assert.NoError(t, err)
		assert.Equal(t, adminauth.RoleSuperAdmin, resp.Role)
		if assert.Len(t, repo.created, 1) {
			stored := repo.created[0]
			assert.NotEqual(t, "correct horse", stored.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
		}
	})

	t.Run("closed once any admin exists", func(t *testing.T) {
		repo := newFakeRepo()
		seedAdmin(t, repo, "sam@example.com", "hunter22", adminauth.RoleSuperAdmin)
		svc := adminauth.NewService(repo, authority, &nopAudit{})

		_, err := svc.Setup(ctx, adminauth.SetupRequest{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "password123",
		})

		assert.Error(t, err)
		assert.Len(t, repo.created, 1)
	})

	t.Run("creation closes the door without a second count", func(t *testing.T) {
		repo := newFakeRepo()
		svc := adminauth.NewService(repo, authority, &nopAudit{})

		_, err := svc.Setup(ctx, adminauth.SetupRequest{
			Name: "Sam", Email: "sam@example.com", Password: "password123",
		})
		assert.NoError(t, err)

		_, err = svc.Setup(ctx, adminauth.SetupRequest{
			Name: "Eve", Email: "eve@example.com", Password: "password123",
		})
		assert.Error(t, err)
	})
}

func TestAdminAuthService_Me(t *testing.T) {
	ctx := context.Background()
	authority := session.NewAuthority([]byte("test-secret"), zap.NewNop())

	repo := newFakeRepo()
	u := seedAdmin(t, repo, "sam@example.com", "hunter22", adminauth.RoleAdmin)
	svc := adminauth.NewService(repo, authority, &nopAudit{})

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Me(ctx, u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("garbage id", func(t *testing.T) {
		_, err := svc.Me(ctx, "not-a-uuid")
		assert.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Me(ctx, uuid.New().String())
		assert.Error(t, err)
	})
}
