package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// OwnerClaims is the claim set of a bearer token accepted by the server.
// Owner identity travels in the standard "sub" claim as a base-10 integer.
type OwnerClaims struct {
	jwt.RegisteredClaims
}

// Owner parses the subject claim into an owner id.
func (c OwnerClaims) Owner() (int64, error) {
	if c.Subject == "" {
		return 0, fmt.Errorf("token has no subject")
	}

	owner, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject %q is not an owner id: %w", c.Subject, err)
	}

	return owner, nil
}

// Token is a verified bearer token: its compact form and the owner it
// authenticates.
type Token struct {
	SignedString string
	Owner        int64
}

// String returns the compact JWS form of the token.
func (t Token) String() string {
	return t.SignedString
}
