package helpers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims are the claims Clerk puts in its session tokens. Subject is
// the Clerk user id; the email claim is present when the session has one.
type CustomClaims struct {
	Email     string `json:"email,omitempty"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified caller, produced once per request by the auth
// middleware and passed explicitly to whatever needs it.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
}

// Owns reports whether the caller is the recorded owner of a resource.
// Byte equality on the opaque provider id; case differences do not match.
func (id Identity) Owns(ownerID string) bool {
	return id.UserID == ownerID
}

func (id Identity) IsZero() bool {
	return id.UserID == ""
}

// ValidateToken verifies a Clerk session JWT against the instance JWKS and
// returns its claims.
func ValidateToken(tokenStr, jwksURL string) (*CustomClaims, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}
