package storage

import (
	"errors"
	"strings"
)

var (
	// ErrUsernameTaken is returned by CreateUser when the username already
	// exists. Mapped from the primary-key constraint on users.username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned by GetUserAuthHash for an unknown
	// username.
	ErrUserNotFound = errors.New("user not found")
)

// isUniqueConstraintError detects a SQLite unique/primary-key violation.
// The modernc driver surfaces these as textual errors, so string matching
// is the portable check.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || strings.Contains(s, "constraint failed")
}
