// Package auth stores and verifies user passwords.
//
// Passwords are hashed with Argon2id using a per-hash random salt, so two
// users with the same password never share a digest. The encoded string
// carries the parameters used, which lets them be tuned later without
// invalidating existing hashes.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters per the OWASP recommendation: 1 iteration, 64 MiB
// memory, 4 threads, 32-byte key.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32

	saltLen = 16
)

var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an Argon2id digest of password with a fresh random
// salt and returns it in the standard encoded form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt b64>$<digest b64>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest)), nil
}

// VerifyPassword reports whether candidate matches the encoded hash. The
// comparison is constant time. A malformed or unsupported encoding verifies
// false rather than returning an error: callers treat any mismatch as bad
// credentials.
func VerifyPassword(encoded, candidate string) bool {
	salt, digest, m, t, p, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(candidate), salt, t, m, p, uint32(len(digest)))
	return subtle.ConstantTimeCompare(got, digest) == 1
}

func decodeHash(encoded string) (salt, digest []byte, m, t uint32, p uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	return salt, digest, m, t, p, nil
}
