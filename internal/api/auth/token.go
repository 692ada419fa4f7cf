package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every resolution failure: bad signature, expiry,
// or missing claims. Callers map it to a 401.
var ErrInvalidToken = errors.New("could not validate token")

// Principal is the authenticated identity derived from a bearer token.
// It is the only thing handlers ever learn about the caller before a
// database lookup.
type Principal struct {
	ID       int64
	Username string
}

// Claims are the JWT claims carried by an access token.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and resolves signed, time-limited bearer tokens.
// Stateless; tokens die by expiry, there is no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given shared
// secret. Tokens expire after ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed HS256 token embedding the username as subject,
// the user id, and an expiry timestamp.
func (s *TokenService) Issue(id int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve verifies signature and expiry and extracts the principal.
// Both the subject and the user id claim must be present.
func (s *TokenService) Resolve(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.UserID == 0 {
		return Principal{}, ErrInvalidToken
	}

	return Principal{ID: claims.UserID, Username: claims.Subject}, nil
}
