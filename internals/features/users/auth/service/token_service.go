// file: internals/features/users/auth/service/token_service.go
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"lmsku_backend/internals/configs"
	userModel "lmsku_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// IssueAccessToken builds a signed access JWT carrying identity + role.
func IssueAccessToken(u *userModel.UserModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken builds a signed refresh JWT (sub only).
func IssueRefreshToken(u *userModel.UserModel, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": u.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTRefreshSecret))
}

// ParseRefreshToken verifies a refresh token and returns its subject.
func ParseRefreshToken(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return "", jwt.ErrTokenMalformed
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
