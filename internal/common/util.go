package common

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandByteArray returns a slice of n cryptographically random bytes.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// MakeRandHexString returns a hex string built from n random bytes
// (the result is 2*n characters long). Used for opaque token identifiers.
func MakeRandHexString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
