package auth

import "math/rand"

const (
	verificationTokenLength  = 13
	verificationTokenCharset = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewVerificationToken returns an opaque base36 string stored on the
// account at signup and embedded in the email-confirmation link. It is
// not cryptographically significant.
func NewVerificationToken() string {
	b := make([]byte, verificationTokenLength)
	for i := range b {
		b[i] = verificationTokenCharset[rand.Intn(len(verificationTokenCharset))]
	}
	return string(b)
}
