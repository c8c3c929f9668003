package security

import (
	"errors"
	"time"

	"quiz_api/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New(config.AppConfig.JWTAlgorithm, config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed access token for the given username. The
// lifetime comes from ACCESS_TOKEN_EXPIRE_MINUTES; there is no per-call ttl.
func GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"exp": now.Add(config.AppConfig.TokenExpiry).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GetSubjectFromClaims extracts the username a verified token was issued to.
func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}
