// internal/utils/credential.go
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Owner credentials are opaque to the rest of the system: once bound to an
// owner they are only ever compared verbatim. Minted credentials are signed
// tokens so a leaked server log cannot be mined for forgeable keys, but
// nothing ever parses them back.

var credentialSecret = []byte("change-me-in-production")

func SetCredentialSecret(secret string) {
	credentialSecret = []byte(secret)
}

// MintCredential issues a fresh owner credential. Each call produces a
// distinct token via a random jti.
func MintCredential(ownerName string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  ownerName,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Issuer:   "licensing-backend",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(credentialSecret)
}
