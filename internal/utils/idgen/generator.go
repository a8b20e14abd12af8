package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns "<prefix>_<n random chars>" using a crypto-grade
// source and a lowercase alphanumeric alphabet.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}

	return prefix + "_" + string(buf), nil
}

// EventID returns a practically unique usage event id: millisecond timestamp
// plus a random suffix, so concurrent writers in the same millisecond do not
// collide.
func EventID() string {
	suffix, err := GenerateSecureID("", 7)
	if err != nil {
		// crypto/rand failing is unrecoverable; fall back to nanotime only.
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d%s", time.Now().UnixMilli(), suffix)
}
