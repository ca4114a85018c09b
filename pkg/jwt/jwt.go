package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiry is the lifetime of an issued token.
const DefaultExpiry = 8 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims structure.
// sub carries the user id and jti a fresh id per issued token.
type Claims struct {
	Email    string   `json:"email"`
	UserName string   `json:"unique_name"`
	Roles    []string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

// HasRole reports whether role is granted.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Identity is the principal a token is issued for.
type Identity struct {
	UserID   string
	Email    string
	UserName string
	Roles    []string
}

// Manager handles JWT operations. Tokens are signed with HMAC-SHA512 over a
// symmetric key; it is safe for concurrent use.
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager. A non-positive expiry falls back to DefaultExpiry.
func NewManager(secret string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// WithClock returns a copy of m that reads the time from now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *Manager) Expiry() time.Duration { return m.expiry }

// Issue signs a bearer token for id.
func (m *Manager) Issue(id Identity) (string, error) {
	now := m.now()
	roles := id.Roles
	if roles == nil {
		roles = []string{}
	}

	claims := Claims{
		Email:    id.Email,
		UserName: id.UserName,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature, algorithm and lifetime and returns the claims.
// Every failure wraps ErrInvalidToken.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
