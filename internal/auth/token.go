package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const opaqueTokenBytes = 32

// generateOpaqueToken mints the random credential behind remember-me and
// password-reset tokens. 32 bytes of entropy before encoding.
func generateOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
