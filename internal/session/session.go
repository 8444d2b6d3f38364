package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind discriminates the three token types. A single HMAC secret signs
// all of them; the typ claim is what keeps a worker token from ever
// passing where a device token is required.
type Kind string

const (
	KindDevice Kind = "device"
	KindWorker Kind = "worker"
	KindAdmin  Kind = "admin"
)

const (
	WorkerTTL = 5 * time.Minute
	AdminTTL  = 7 * 24 * time.Hour
)

// FailReason classifies verification failures for the audit log.
type FailReason string

const (
	FailMissing   FailReason = "missing"
	FailInvalid   FailReason = "invalid"
	FailWrongType FailReason = "wrong_type"
)

// Claims is the verified, typed view handed back to callers.
type Claims struct {
	Subject   string
	Kind      Kind
	JTI       string
	Pin       string   // worker: PIN echo
	Location  string   // device: bound location name
	Role      string   // admin
	Locations []string // admin: home-location scope
	ExpiresAt time.Time
}

// Extra carries the kind-specific claims supplied at issue time.
type Extra struct {
	Pin       string
	Location  string
	Role      string
	Locations []string
}

type tokenClaims struct {
	Typ       string   `json:"typ"`
	Pin       string   `json:"pin,omitempty"`
	Location  string   `json:"loc,omitempty"`
	Role      string   `json:"role,omitempty"`
	Locations []string `json:"locs,omitempty"`
	jwt.RegisteredClaims
}

type Authority struct {
	secret []byte
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthority(secret []byte, logger *zap.Logger) *Authority {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authority{secret: secret, logger: logger, now: time.Now}
}

// Issue signs a token of the given kind. Device tokens never expire;
// revocation of the device row is their only termination path.
func (a *Authority) Issue(kind Kind, subject string, extra Extra) (string, error) {
	now := a.now()
	claims := tokenClaims{
		Typ:       string(kind),
		Pin:       extra.Pin,
		Location:  extra.Location,
		Role:      extra.Role,
		Locations: extra.Locations,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	switch kind {
	case KindWorker:
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(WorkerTTL))
		claims.ID = uuid.New().String()
	case KindAdmin:
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(AdminTTL))
	case KindDevice:
		// no expiry
	default:
		return "", errors.New("unknown session kind")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify checks signature, expiry and the typ discriminant. It never
// returns an error to the caller; failures come back as (nil, false)
// and are written to the security audit log for device/worker kinds.
func (a *Authority) Verify(kind Kind, tokenString string) (*Claims, bool) {
	if strings.TrimSpace(tokenString) == "" {
		a.logFailure(kind, FailMissing, nil)
		return nil, false
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))

	if err != nil || !token.Valid {
		a.logFailure(kind, FailInvalid, err)
		return nil, false
	}

	if claims.Typ != string(kind) {
		a.logFailure(kind, FailWrongType, nil)
		return nil, false
	}

	out := &Claims{
		Subject:   claims.Subject,
		Kind:      kind,
		JTI:       claims.ID,
		Pin:       claims.Pin,
		Location:  claims.Location,
		Role:      claims.Role,
		Locations: claims.Locations,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, true
}

func (a *Authority) logFailure(kind Kind, reason FailReason, err error) {
	// Admin token failures go through the normal error path; only the
	// kiosk-facing identities feed the security audit log.
	if kind == KindAdmin {
		return
	}
	a.logger.Named("audit").Warn("token verification failed",
		zap.String("kind", string(kind)),
		zap.String("reason", string(reason)),
		zap.Error(err),
	)
}
