// Package auth provides credential hashing, signed bearer tokens and the
// echo middleware enforcing them.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Stored credentials are tagged with a scheme prefix so the hashing
// algorithm can be migrated without rewriting every row:
//
//	simple:<hex sha256>   unsalted digest, development only
//	bcrypt:<bcrypt hash>  salted, slow; what production rows should use
//
// Unknown tags never verify.
const (
	schemeSimple = "simple"
	schemeBcrypt = "bcrypt"
)

// HashPassword produces a tagged development hash. Deterministic: the same
// input always yields the same value. Not production-grade (no salt, fast
// digest); migrate stored rows to the bcrypt scheme via HashPasswordBcrypt.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return schemeSimple + ":" + hex.EncodeToString(sum[:])
}

// HashPasswordBcrypt produces a bcrypt-tagged hash at the default cost.
func HashPasswordBcrypt(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return schemeBcrypt + ":" + string(h), nil
}

// VerifyPassword reports whether plain matches the stored tagged hash.
func VerifyPassword(plain, tagged string) bool {
	scheme, payload, ok := strings.Cut(tagged, ":")
	if !ok {
		return false
	}
	switch scheme {
	case schemeSimple:
		sum := sha256.Sum256([]byte(plain))
		want := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(want), []byte(payload)) == 1
	case schemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(payload), []byte(plain)) == nil
	default:
		return false
	}
}
