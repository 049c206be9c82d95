package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/types"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: expirationHours,
	})
}

// signClaims signs arbitrary claims with the test secret.
func signClaims(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken(uuid.New(), types.RoleSeeker)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3, "JWT should have 3 parts separated by dots")
	for _, part := range parts {
		assert.NotEmpty(t, part)
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, types.RoleEmployer)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, types.RoleEmployer, claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestJWTService_IssuedAtDiffers(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()
	base := time.Now()

	service.now = func() time.Time { return base.Add(-time.Minute) }
	token1, err := service.GenerateToken(userID, types.RoleSeeker)
	require.NoError(t, err)

	service.now = func() time.Time { return base }
	token2, err := service.GenerateToken(userID, types.RoleSeeker)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service1 := setupTestJWTService(t, 24)
	service2 := setupTestJWTService(t, 24)
	service2.config.Secret = "different-secret-key-for-jwt-signing-minimum-32-bytes"

	token, err := service1.GenerateToken(uuid.New(), types.RoleSeeker)
	require.NoError(t, err)

	claims, err := service2.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_ValidateToken_MalformedToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"one part", "invalid"},
		{"two parts", "invalid.token"},
		{"four parts", "invalid.token.format.extra"},
		{"invalid base64", "invalid.base64.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateToken_RejectsForeignClaims(t *testing.T) {
	service := setupTestJWTService(t, 24)
	now := time.Now()
	valid := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	tests := []struct {
		name   string
		method jwt.SigningMethod
		claims func() *Claims
	}{
		{"wrong issuer", jwt.SigningMethodHS256, func() *Claims {
			c := &Claims{Role: types.RoleSeeker, RegisteredClaims: valid()}
			c.Issuer = "someone-else"
			return c
		}},
		{"no expiry", jwt.SigningMethodHS256, func() *Claims {
			c := &Claims{Role: types.RoleSeeker, RegisteredClaims: valid()}
			c.ExpiresAt = nil
			return c
		}},
		{"subject not a uuid", jwt.SigningMethodHS256, func() *Claims {
			c := &Claims{Role: types.RoleSeeker, RegisteredClaims: valid()}
			c.Subject = "user-1"
			return c
		}},
		{"unknown role", jwt.SigningMethodHS256, func() *Claims {
			return &Claims{Role: "owner", RegisteredClaims: valid()}
		}},
		{"other hmac algorithm", jwt.SigningMethodHS512, func() *Claims {
			return &Claims{Role: types.RoleSeeker, RegisteredClaims: valid()}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(signClaims(t, tt.method, tt.claims()))
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Now()
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New(), types.RoleSeeker)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(2 * time.Hour) }
	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_TokenExpiration_DifferentHours(t *testing.T) {
	for _, hours := range []int{1, 12, 24, 48} {
		service := setupTestJWTService(t, hours)

		token, err := service.GenerateToken(uuid.New(), types.RoleRecruiter)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Duration(hours)*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, types.RoleAdmin)
	require.NoError(t, err)

	got, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, types.RoleAdmin, got.Role)

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}

func TestJWTService_ErrorHandling(t *testing.T) {
	service := setupTestJWTService(t, 24)

	claims, err := service.ValidateToken("")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "empty")
}
