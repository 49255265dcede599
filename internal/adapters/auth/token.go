package auth

import (
	"fmt"
	"time"

	"campusevents/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type serviceClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

type serviceTokenIssuer struct {
	secret  []byte
	service string
	ttl     time.Duration
	now     func() time.Time
}

// NewServiceTokenIssuer returns a TokenIssuer that signs HS256 JWTs identifying service as the
// caller. Each token expires after ttl.
func NewServiceTokenIssuer(secret, service string, ttl time.Duration) domain.TokenIssuer {
	return &serviceTokenIssuer{secret: []byte(secret), service: service, ttl: ttl, now: time.Now}
}

func (i *serviceTokenIssuer) Issue(audience string) (string, error) {
	now := i.now()
	claims := serviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.service,
			Subject:   i.service,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Scope: "service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
