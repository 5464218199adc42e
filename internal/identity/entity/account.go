package entity

import "time"

// Account is the long-lived identity aggregate. Password holds the digest,
// never the plaintext.
type Account struct {
	ID        int64
	Username  string
	Email     string
	Password  string // hashed
	Verified  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerificationCode is the pending OTP challenge for one account. At most one
// row exists per account; issuing a new code replaces the old one in place.
type VerificationCode struct {
	ID        int64
	AccountID int64
	Code      int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewAccount carries the fields needed to insert an account together with its
// first verification code.
type NewAccount struct {
	ID       int64
	Username string
	Email    string
	Password string // hashed
}
