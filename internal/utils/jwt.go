package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-item-sync/models"
)

// ErrInvalidAuthorizationHeader is returned when the header is not of the
// form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

// IssueOwnerToken signs an HS256 token for owner. The server only verifies
// tokens; issuing is used by tests and operator tooling.
func IssueOwnerToken(issuer string, owner int64, ttl time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || ttl <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for issuing owner token")
	}

	now := time.Now()
	claims := models.OwnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(owner, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing owner token: %w", err)
	}

	return models.Token{SignedString: signed, Owner: owner}, nil
}

// ParseOwnerToken verifies tokenString (HS256 signature, issuer, expiry)
// and returns the owner it authenticates.
func ParseOwnerToken(tokenString, signKey, issuer string) (models.Token, error) {
	var claims models.OwnerClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating owner token: %w", err)
	}

	owner, err := claims.Owner()
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{SignedString: tokenString, Owner: owner}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(token), nil
}
