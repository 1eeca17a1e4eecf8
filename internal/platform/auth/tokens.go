package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService signs HS256 access tokens and mints opaque refresh tokens.
// Only the SHA-256 of a refresh token is meant to be stored.
type TokenService struct {
	Secret    []byte
	Issuer    string
	AccessTTL time.Duration
}

func (s TokenService) NewAccessToken(userID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.AccessTTL)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    s.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s TokenService) NewRefreshToken() (string, string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	return raw, s.HashRefreshToken(raw), nil
}

func (s TokenService) HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Verifier returns a JWTVerifier accepting tokens from s.
func (s TokenService) Verifier() JWTVerifier {
	return JWTVerifier{Secret: s.Secret}
}
