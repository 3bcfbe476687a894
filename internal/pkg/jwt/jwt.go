package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimUserID = "user_id"
	ClaimType   = "type"

	TokenTypeAccess = "access"
)

var ErrInvalidClaims = errors.New("token does not carry an access user id")

type Service interface {
	GenerateAccessToken(userID string) (token string, expiresAt int64, err error)
	// UserIDFromToken extracts the subject of a verified access token.
	UserIDFromToken(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID: userID,
		ClaimType:   TokenTypeAccess,
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) UserIDFromToken(token jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidClaims
	}
	tokenType, ok := token.Get(ClaimType)
	if !ok || tokenType != TokenTypeAccess {
		return "", ErrInvalidClaims
	}
	raw, ok := token.Get(ClaimUserID)
	if !ok {
		return "", ErrInvalidClaims
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", ErrInvalidClaims
	}
	return userID, nil
}
