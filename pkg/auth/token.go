package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// AdminCapabilityClaims is the typed capability minted at admin login and
// carried inside the server-side session. It replaces a bare boolean flag so
// back-office access expires independently of the session TTL.
type AdminCapabilityClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const adminScope = "admin"

// MintAdminCapability issues a signed, short-lived admin capability token.
func MintAdminCapability(cfg config.AdminConfig, now time.Time) (string, error) {
	if cfg.TokenSigningSecret == "" {
		return "", fmt.Errorf("admin token signing secret is required")
	}
	if cfg.TokenTTL() <= 0 {
		return "", fmt.Errorf("admin token ttl must be positive")
	}

	claims := AdminCapabilityClaims{
		Scope: adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.TokenSigningSecret))
	if err != nil {
		return "", fmt.Errorf("signing admin capability: %w", err)
	}
	return signed, nil
}

// VerifyAdminCapability validates the capability token and its scope.
func VerifyAdminCapability(cfg config.AdminConfig, tokenString string) (*AdminCapabilityClaims, error) {
	if cfg.TokenSigningSecret == "" {
		return nil, fmt.Errorf("admin token signing secret is required")
	}

	claims := &AdminCapabilityClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.TokenSigningSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.TokenIssuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.Scope != adminScope {
		return nil, fmt.Errorf("unexpected capability scope %q", claims.Scope)
	}

	return claims, nil
}
