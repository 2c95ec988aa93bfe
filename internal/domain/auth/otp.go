package auth

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"time"
)

const (
	codeLength       = 6
	sessionTokenSize = 32
)

// OTPStore is the ephemeral registry of live one-time codes, keyed by
// normalized phone. At most one live code per phone; Put overwrites.
type OTPStore interface {
	Put(phone, code string, expiresAt time.Time)
	Get(phone string) (code string, expiresAt time.Time, ok bool)
	Delete(phone string)
}

func generateCode() (string, error) {
	max := big.NewInt(10)

	var builder strings.Builder
	builder.Grow(codeLength)

	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte('0' + byte(n.Int64()))
	}

	return builder.String(), nil
}

func generateSessionToken() (string, error) {
	var b [sessionTokenSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
