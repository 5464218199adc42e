package entity

import "errors"

// Store-level uniqueness violations. The unique indexes on accounts are the
// authoritative duplicate signal; the pre-insert reads only improve messages.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)
