package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"password1", "pässwörd", "correct horse battery staple"} {
		hash, err := HashPassword(p)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", p, err)
		}
		if !CheckPassword(p, hash) {
			t.Fatalf("CheckPassword(%q, hash) = false, want true", p)
		}
		if CheckPassword(p+"x", hash) {
			t.Fatalf("CheckPassword with wrong password = true, want false")
		}
	}
}

func TestHashAndCheckPassword_LongPassword(t *testing.T) {
	t.Parallel()

	// bcrypt alone caps input at 72 bytes; the pre-hash lifts that limit,
	// so the longest accepted password must round-trip and its tail must
	// still be significant.
	long := strings.Repeat("a", 128)
	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("HashPassword(128 chars) error: %v", err)
	}
	if !CheckPassword(long, hash) {
		t.Fatalf("CheckPassword(128 chars, hash) = false, want true")
	}
	if CheckPassword(strings.Repeat("a", 127)+"b", hash) {
		t.Fatalf("password differing only past byte 72 verified; tail is ignored")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt is not applied")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("password1", "not-a-bcrypt-hash") {
		t.Fatalf("CheckPassword on malformed hash = true, want false")
	}
}
