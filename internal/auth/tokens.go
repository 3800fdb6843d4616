package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleStore    Role = "store"
	RoleSupplier Role = "supplier"
)

const (
	AccessCookie = "accessToken"
	AccessTTL    = 12 * time.Hour
)

// SupplierSubject is the token subject of the single supplier account.
const SupplierSubject = "supplier"

type Claims struct {
	Role      Role   `json:"role"`
	StoreName string `json:"store_name,omitempty"`
	jwt.RegisteredClaims
}

func IssueToken(secret []byte, role Role, subject, storeName string, now time.Time) (string, time.Time, error) {
	exp := now.Add(AccessTTL)
	claims := Claims{
		Role:      role,
		StoreName: storeName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ClaimsFromToken validates expiry against now, the same clock that issued the token.
func ClaimsFromToken(tokenStr string, secret []byte, now time.Time) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
