package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/yukikurage/template-settings-api/internal/constants"
)

// GenerateTokenKey returns a random 40 character hex key for a bearer token.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, constants.TokenKeyLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
