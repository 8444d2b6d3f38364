package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestAuthority() *Authority {
	return NewAuthority([]byte("test-secret"), zap.NewNop())
}

func TestAuthority_IssueAndVerify(t *testing.T) {
	a := newTestAuthority()

	token, err := a.Issue(KindWorker, "emp-1", Extra{Pin: "1234"})
	assert.NoError(t, err)

	claims, ok := a.Verify(KindWorker, token)
	assert.True(t, ok)
	assert.Equal(t, "emp-1", claims.Subject)
	assert.Equal(t, "1234", claims.Pin)
	assert.NotEmpty(t, claims.JTI, "worker tokens must carry a jti")
	assert.WithinDuration(t, time.Now().Add(WorkerTTL), claims.ExpiresAt, 5*time.Second)
}

func TestAuthority_WrongTypeRejected(t *testing.T) {
	a := newTestAuthority()

	workerToken, _ := a.Issue(KindWorker, "emp-1", Extra{})
	deviceToken, _ := a.Issue(KindDevice, "dev-1", Extra{Location: "HQ"})

	// Cryptographically valid, wrong discriminant: must never pass.
	_, ok := a.Verify(KindDevice, workerToken)
	assert.False(t, ok)

	_, ok = a.Verify(KindWorker, deviceToken)
	assert.False(t, ok)

	_, ok = a.Verify(KindAdmin, deviceToken)
	assert.False(t, ok)
}

func TestAuthority_DeviceTokenHasNoExpiry(t *testing.T) {
	a := newTestAuthority()

	token, err := a.Issue(KindDevice, "dev-1", Extra{Location: "Warehouse"})
	assert.NoError(t, err)

	// Verify as if years have passed; only revocation may end a device identity.
	a.now = func() time.Time { return time.Now().Add(3 * 365 * 24 * time.Hour) }
	claims, ok := a.Verify(KindDevice, token)
	assert.True(t, ok)
	assert.Equal(t, "Warehouse", claims.Location)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestAuthority_WorkerTokenExpires(t *testing.T) {
	a := newTestAuthority()

	token, _ := a.Issue(KindWorker, "emp-1", Extra{})

	a.now = func() time.Time { return time.Now().Add(WorkerTTL + time.Minute) }
	_, ok := a.Verify(KindWorker, token)
	assert.False(t, ok)
}

func TestAuthority_GarbageAndEmptyTokens(t *testing.T) {
	a := newTestAuthority()

	_, ok := a.Verify(KindWorker, "")
	assert.False(t, ok)

	_, ok = a.Verify(KindWorker, "not.a.token")
	assert.False(t, ok)
}

func TestAuthority_TamperedSecretRejected(t *testing.T) {
	a := newTestAuthority()
	other := NewAuthority([]byte("other-secret"), zap.NewNop())

	token, _ := a.Issue(KindAdmin, "admin-1", Extra{Role: "admin"})
	_, ok := other.Verify(KindAdmin, token)
	assert.False(t, ok)
}

func TestAuthority_AdminClaimsRoundTrip(t *testing.T) {
	a := newTestAuthority()

	token, _ := a.Issue(KindAdmin, "admin-1", Extra{
		Role:      "user",
		Locations: []string{"HQ", "Warehouse"},
	})

	claims, ok := a.Verify(KindAdmin, token)
	assert.True(t, ok)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, []string{"HQ", "Warehouse"}, claims.Locations)
}
