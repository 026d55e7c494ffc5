package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from the system CSPRNG. A failure
// to read random bytes leaves the process without a usable entropy source,
// so it panics rather than returning a weak value.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Useful for removing sensitive data such as passwords from memory after use.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
