// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user id next to the registered claims. Only sub and iat
// are set; tokens have no exp and stay valid until the secret changes.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenService signs tokens with a process-wide HMAC secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed HS256 token for userID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// Verify returns the user id carried by tokenString.
// An empty token yields common.ErrorUnauthenticated, anything that fails
// parsing or signature checks yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", common.ErrorUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.UserID == "" || (claims.Subject != "" && claims.Subject != claims.UserID) {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
