package generate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// ResetURLTokenLength is the length of the hex encoded token embedded in
	// a password reset link.
	ResetURLTokenLength = 64
	// EntryTokenLength is the length of the verification code sent in the
	// body of the reset email.
	EntryTokenLength = 6

	resetURLTokenSalt = "#$@%$"
)

// ResetURLToken derives the long token embedded in a password reset link. The
// token is the hex encoded SHA-256 of the account name, the current time, a
// static salt, and a fresh random nonce. The link may end up in server logs
// and browser history, so the token must be unguessable. The nonce guarantees
// a retry after a uniqueness collision produces a different value, even
// within the same clock tick.
func ResetURLToken(name string, now time.Time) (string, error) {
	nonce, err := CryptoRandom(16, CharsetAlphaNumeric)
	if err != nil {
		return "", err
	}

	seed := name + now.UTC().Format(time.RFC3339Nano) + resetURLTokenSalt + nonce
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:]), nil
}

// EntryToken derives the short verification code delivered in the reset email
// body. The code is never part of the link, so it acts as a second factor
// that does not leak through request logs. It hashes a random 128 bit value
// and keeps the first EntryTokenLength characters.
func EntryToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate entry token: %w", err)
	}

	sum := sha256.Sum256(id[:])
	return hex.EncodeToString(sum[:])[:EntryTokenLength], nil
}
