package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")
	subject := "52998224725"

	tokenString, expiresAt, err := svc.GenerateAccessToken(user.Principal{ID: "u-1", Role: user.RoleUser, SubjectID: &subject})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", p.ID)
	assert.Equal(t, user.RoleUser, p.Role)
	require.NotNil(t, p.SubjectID)
	assert.Equal(t, subject, *p.SubjectID)
}

func TestGenerateAccessToken_TerminalWithoutSubject(t *testing.T) {
	svc := NewJWTService(testSecret, "1h")

	tokenString, _, err := svc.GenerateAccessTokenWithTTL(user.Principal{ID: "portaria-01", Role: user.RoleTerminal}, 24*time.Hour)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	p, ok := PrincipalFromContext(jwtauth.NewContext(context.Background(), token, nil))
	require.True(t, ok)
	assert.Equal(t, user.RoleTerminal, p.Role)
	assert.Nil(t, p.SubjectID)
}

func TestGenerateAccessToken_Errors(t *testing.T) {
	_, _, err := NewJWTService(testSecret, "soon").GenerateAccessToken(user.Principal{Role: user.RoleAdmin})
	assert.Error(t, err)

	_, _, err = NewJWTService(testSecret, "1h").GenerateAccessToken(user.Principal{Role: "owner"})
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestPrincipalFromContext_NoToken(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}

func TestPrincipalFromClaims_UnknownRole(t *testing.T) {
	_, ok := PrincipalFromClaims(map[string]interface{}{"role": "pending"})
	assert.False(t, ok)
}
