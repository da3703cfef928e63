package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %q", encoded)
	}

	if !VerifyPassword(encoded, "s3cret") {
		t.Fatal("correct password should verify")
	}
	if VerifyPassword(encoded, "wrong") {
		t.Fatal("wrong password should not verify")
	}
	if VerifyPassword(encoded, "") {
		t.Fatal("empty password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
	if !VerifyPassword(a, "same-password") || !VerifyPassword(b, "same-password") {
		t.Fatal("both salted hashes should verify the original password")
	}
}

func TestVerifyMalformed(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$notbase64!!$xxxx",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		"5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", // bare sha256 hex
	}
	for _, encoded := range cases {
		if VerifyPassword(encoded, "password") {
			t.Fatalf("malformed hash %q should not verify", encoded)
		}
	}
}
