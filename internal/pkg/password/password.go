// Package password implements the credential hashing scheme: PBKDF2-HMAC-SHA256
// over a per-record random salt, encoded as "saltHex:derivedKeyHex" so salt
// and key travel together as one opaque string.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 100_000
	keyBytes   = 32
)

// Hash derives a key from plaintext under a fresh random salt. Two calls with
// the same plaintext produce different records; both verify.
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return encode(plaintext, hex.EncodeToString(salt)), nil
}

// Verify reports whether plaintext matches the stored record. A malformed
// record verifies false; it never fails the caller.
func Verify(plaintext, stored string) bool {
	saltHex, _, ok := strings.Cut(stored, ":")
	if !ok || saltHex == "" {
		return false
	}
	computed := encode(plaintext, saltHex)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

// encode derives the key using the hex salt string itself as salt material,
// so a record is reproducible from its own prefix.
func encode(plaintext, saltHex string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(saltHex), iterations, keyBytes, sha256.New)
	return saltHex + ":" + hex.EncodeToString(key)
}
