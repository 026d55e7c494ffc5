package auth

import (
	"strings"
	"testing"
)

// Small parameters keep the KDF fast in tests.
func testHasher() *Hasher {
	return NewHasher(HasherParams{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := testHasher()
	encoded := h.Hash("testpass123")

	if !h.Verify("testpass123", encoded) {
		t.Fatalf("expected correct password to verify")
	}
	if h.Verify("wrongpass", encoded) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHash_ProducesPHCFormat(t *testing.T) {
	t.Parallel()

	encoded := testHasher().Hash("testpass123")

	if !strings.HasPrefix(encoded, "$argon2id$v=") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}
	if parts := strings.Split(encoded, "$"); len(parts) != 6 {
		t.Fatalf("expected 6 segments, got %d: %q", len(parts), encoded)
	}
	if !strings.Contains(encoded, "m=8192,t=1,p=1") {
		t.Fatalf("expected cost parameters in hash: %q", encoded)
	}
}

func TestHash_SaltedOutputDiffers(t *testing.T) {
	t.Parallel()

	h := testHasher()
	a := h.Hash("testpass123")
	b := h.Hash("testpass123")

	if a == b {
		t.Fatalf("expected distinct hashes for the same password (random salt)")
	}
	if !h.Verify("testpass123", a) || !h.Verify("testpass123", b) {
		t.Fatalf("both hashes must verify")
	}
}

// Hashes produced with one parameter set must verify under a hasher
// configured with another: the parameters travel inside the hash string.
func TestVerify_UsesEmbeddedParameters(t *testing.T) {
	t.Parallel()

	old := NewHasher(HasherParams{Memory: 8 * 1024, Time: 2, Parallelism: 1, SaltLength: 16, KeyLength: 16})
	encoded := old.Hash("testpass123")

	if !testHasher().Verify("testpass123", encoded) {
		t.Fatalf("expected verification to use parameters embedded in the hash")
	}
}

func TestVerify_MalformedHashIsFalse(t *testing.T) {
	t.Parallel()

	h := testHasher()

	malformed := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$salt",              // missing segment
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",      // wrong algorithm
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA",     // wrong version
		"$argon2id$v=19$m=8192,t=1$c2FsdA$aGFzaA",         // missing parameter
		"$argon2id$v=19$m=8192,t=1,p=1$!!notb64!!$aGFzaA", // bad salt encoding
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!notb64!!", // bad key encoding
	}

	for _, enc := range malformed {
		if h.Verify("testpass123", enc) {
			t.Fatalf("expected Verify to be false for malformed hash %q", enc)
		}
	}
}
