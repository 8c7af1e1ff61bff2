package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const headerPrefix = "sha256="

// Verifier validates Meta webhook payload signatures. The provider signs
// the raw request body with HMAC-SHA256 and ships the hex digest in the
// X-Hub-Signature-256 header.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the shared app secret. An empty
// secret disables enforcement.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether signature enforcement is active.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify checks the signature header against the raw body. A malformed
// header is a verification failure, never an error.
func (v *Verifier) Verify(rawBody []byte, header string) bool {
	if !v.Enabled() {
		return true
	}
	if !strings.HasPrefix(header, headerPrefix) {
		return false
	}
	provided := strings.TrimSpace(strings.TrimPrefix(header, headerPrefix))

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(provided))
}
