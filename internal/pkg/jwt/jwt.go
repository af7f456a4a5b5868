package jwt

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error)
	GenerateAccessTokenWithTTL(principal user.Principal, ttl time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(principal user.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	return j.GenerateAccessTokenWithTTL(principal, expDuration)
}

// GenerateAccessTokenWithTTL is used for long-lived terminal tokens.
func (j *JWTService) GenerateAccessTokenWithTTL(principal user.Principal, ttl time.Duration) (token string, expiresAt int64, err error) {
	if !principal.Role.Valid() {
		return "", 0, user.ErrInvalidRole
	}
	expiresAt = time.Now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id":    principal.ID,
		"role":       string(principal.Role),
		"subject_id": returnValueOrNil(principal.SubjectID),
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// PrincipalFromClaims decodes the caller from verified token claims.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, bool) {
	roleStr, ok := claims["role"].(string)
	if !ok || !user.Role(roleStr).Valid() {
		return user.Principal{}, false
	}

	p := user.Principal{Role: user.Role(roleStr)}
	p.ID, _ = claims["user_id"].(string)
	if subject, ok := claims["subject_id"].(string); ok && subject != "" {
		p.SubjectID = &subject
	}
	return p, true
}

// PrincipalFromContext returns the caller attached by jwtauth.Verifier.
// ok is false when the request carries no valid token.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return user.Principal{}, false
	}
	return PrincipalFromClaims(claims)
}
