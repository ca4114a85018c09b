package jwt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var testIdentity = Identity{
	UserID:   "5b0c1c2e-2f1e-4c57-9d8a-2b8c8f4f3b1a",
	Email:    "ana@example.com",
	UserName: "ana",
	Roles:    []string{"User"},
}

func TestIssueCarriesClaims(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(testSecret, 0).WithClock(func() time.Time { return issued })

	token, err := m.Issue(testIdentity)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity.UserID, claims.UserID())
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ana", claims.UserName)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.True(t, claims.HasRole("User"))
	assert.False(t, claims.HasRole("Admin"))
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(8*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestIssueUsesHS512AndWireNames(t *testing.T) {
	m := NewManager(testSecret, DefaultExpiry)

	token, err := m.Issue(testIdentity)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header, err := jwt.NewParser().DecodeSegment(parts[0])
	require.NoError(t, err)
	assert.Contains(t, string(header), `"alg":"HS512"`)

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	for _, key := range []string{"sub", "email", "unique_name", "jti", "role", "iat", "nbf", "exp"} {
		assert.Contains(t, raw, key)
	}
	assert.IsType(t, []any{}, raw["role"])
}

func TestJTIIsUniquePerIssue(t *testing.T) {
	m := NewManager(testSecret, DefaultExpiry)

	a, err := m.Issue(testIdentity)
	require.NoError(t, err)
	b, err := m.Issue(testIdentity)
	require.NoError(t, err)

	ca, err := m.Validate(a)
	require.NoError(t, err)
	cb, err := m.Validate(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestTokenExpiresAfterEightHours(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(testSecret, DefaultExpiry).WithClock(func() time.Time { return issued })

	token, err := m.Issue(testIdentity)
	require.NoError(t, err)

	_, err = m.WithClock(func() time.Time { return issued.Add(8*time.Hour - time.Minute) }).Validate(token)
	assert.NoError(t, err)

	_, err = m.WithClock(func() time.Time { return issued.Add(8*time.Hour + time.Second) }).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	m := NewManager(testSecret, DefaultExpiry)

	other, err := NewManager(strings.Repeat("x", 64), DefaultExpiry).Issue(testIdentity)
	require.NoError(t, err)
	_, err = m.Validate(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs256 := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hs256.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x"},
	})
	signed, err = noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
