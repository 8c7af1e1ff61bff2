package usecase

import "fmt"

// Card images exist for 0 through 10 stamps; anything outside is
// clamped to the nearest edge.
const (
	minCardStamps = 0
	maxCardStamps = 10
)

// CardRenderer maps a visit count to the public stamp card image URL.
type CardRenderer struct {
	baseURL string
}

// NewCardRenderer constructs a renderer over the given image base path.
func NewCardRenderer(baseURL string) *CardRenderer {
	return &CardRenderer{baseURL: baseURL}
}

// URL returns the card image for the clamped visit count. Deterministic
// and stateless.
func (r *CardRenderer) URL(visits int) string {
	if visits < minCardStamps {
		visits = minCardStamps
	}
	if visits > maxCardStamps {
		visits = maxCardStamps
	}
	return fmt.Sprintf("%s%d.png", r.baseURL, visits)
}
