package security

import (
	"errors"
	"strings"
	"testing"

	"account-activation-service/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	// MinCost keeps the test fast; production cost comes from config.
	h := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and compare round-trip", func(t *testing.T) {
		hash, err := h.Hash("P@ssw0rd1")
		if err != nil {
			t.Fatalf("Hash failed: %v", err)
		}
		if !strings.HasPrefix(hash, "$2") {
			t.Errorf("expected a bcrypt hash, got %q", hash)
		}
		if !h.Compare("P@ssw0rd1", hash) {
			t.Error("correct password must compare true")
		}
		if h.Compare("wrong-password", hash) {
			t.Error("wrong password must compare false")
		}
	})

	t.Run("two hashes of the same password differ", func(t *testing.T) {
		h1, _ := h.Hash("P@ssw0rd1")
		h2, _ := h.Hash("P@ssw0rd1")
		if h1 == h2 {
			t.Error("bcrypt salts must make hashes unique")
		}
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		if _, err := h.Hash(""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("clamps an out-of-range cost", func(t *testing.T) {
		clamped := NewBcryptHasher(1000)
		hash, err := clamped.Hash("P@ssw0rd1")
		if err != nil {
			t.Fatalf("Hash with clamped cost failed: %v", err)
		}
		if !clamped.Compare("P@ssw0rd1", hash) {
			t.Error("clamped hasher must still verify")
		}
	})
}
