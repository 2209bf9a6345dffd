package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const sessionIDBytes = 4

// GeneratePlayerID - returns a new unique player identifier.
func GeneratePlayerID() string {
	return uuid.NewString()
}

// GenerateSessionID - returns a short random session code.
func GenerateSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
