// Package otp generates numeric one-time codes for email verification.
//
// Codes are short-lived secrets: generate one, deliver it out of band, and
// compare it against user input before it expires. Generation uses crypto/rand
// so codes are not guessable from previous ones.
package otp
