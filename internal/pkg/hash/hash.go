package hash

// Hash defines the contract for one-way hashing of secrets.
type Hash interface {
	// Hash takes a plaintext string and returns its hashed representation.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hashed value.
	//
	// Implementations must compare in constant time and fail closed: a
	// malformed or empty hash verifies false, it never panics or errors.
	Verify(hashed, plaintext string) bool
}
