package usecase

import (
	"crypto/rand"
	"io"
)

// generateActivationCode creates a secure random numeric code of fixed width.
// Format: NNNN (zero-padded, so "0042" is a valid code).
func generateActivationCode() (string, error) {
	const digits = "0123456789"
	const codeLength = 4

	buffer := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}

	for i := 0; i < codeLength; i++ {
		buffer[i] = digits[int(buffer[i])%len(digits)]
	}
	return string(buffer), nil
}
