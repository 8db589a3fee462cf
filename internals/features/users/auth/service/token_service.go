// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"assessku_backend/internals/constants"
	userModel "assessku_backend/internals/features/users/user/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims: isi access token yang dipakai middleware.
type AccessClaims struct {
	UserID    uuid.UUID
	Role      constants.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func buildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"role":      string(user.Role),
		"user_name": user.UserName,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// IssueAccessToken menandatangani access token HS256.
func IssueAccessToken(user userModel.UserModel, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET kosong")
	}
	claims := buildAccessClaims(user, now, ttl)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, time.Unix(now.Add(ttl).Unix(), 0).UTC(), nil
}

// ParseAccessToken: verifikasi tanda tangan, lalu exp dengan toleransi skew.
func ParseAccessToken(token, secret string, now time.Time, skew time.Duration) (*AccessClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
		return nil, fmt.Errorf("%w: typ %s", ErrTokenInvalid, typ)
	}

	exp, err := unixClaim(claims, "exp")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if now.After(exp.Add(skew)) {
		return nil, ErrTokenExpired
	}
	iat, _ := unixClaim(claims, "iat")

	idRaw, _ := claims["id"].(string)
	uid, err := uuid.Parse(strings.TrimSpace(idRaw))
	if err != nil {
		return nil, fmt.Errorf("%w: user id", ErrTokenInvalid)
	}
	roleRaw, _ := claims["role"].(string)
	role, ok := constants.ParseRole(roleRaw)
	if !ok {
		return nil, fmt.Errorf("%w: role %q", ErrTokenInvalid, roleRaw)
	}
	return &AccessClaims{UserID: uid, Role: role, IssuedAt: iat, ExpiresAt: exp}, nil
}

func unixClaim(claims jwt.MapClaims, key string) (time.Time, error) {
	switch v := claims[key].(type) {
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case nil:
		return time.Time{}, fmt.Errorf("no %s", key)
	default:
		return time.Time{}, fmt.Errorf("invalid %s type", key)
	}
}
