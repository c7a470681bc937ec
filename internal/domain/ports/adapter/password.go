package adapter

// PasswordHasher hashes raw passwords with a slow adaptive hash and verifies
// candidates against stored hashes.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	// Compare reports whether raw matches the stored hash. Comparison relies
	// on the hash algorithm's constant-time semantics.
	Compare(raw, hash string) bool
}
