package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/huddle-dev/huddle/internal/types"
)

// Identity is the (userId, email) pair recovered from a valid session token.
type Identity struct {
	UserID string
	Email  string
}

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a process-wide HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is not set")
	}
	return &Issuer{secret: []byte(secret), ttl: types.SessionTTL, now: time.Now}, nil
}

// TTL is the validity window of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()
	claims := &Claims{
		UserID: id.UserID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify returns the identity asserted by tokenString. Every failure is ErrUnauthenticated.
func (i *Issuer) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, types.Errorf(types.ErrUnauthenticated, "No token provided")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(i.now))

	if err != nil || !token.Valid {
		return Identity{}, types.Errorf(types.ErrUnauthenticated, "Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return Identity{}, types.Errorf(types.ErrUnauthenticated, "Invalid token claims")
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// VerifyOptional treats any verification failure as an anonymous caller.
func (i *Issuer) VerifyOptional(tokenString string) *Identity {
	id, err := i.Verify(tokenString)
	if err != nil {
		return nil
	}
	return &id
}
