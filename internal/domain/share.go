package domain

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"golang.org/x/text/width"
)

// ShareIDLength is the length of generated share tokens.
const ShareIDLength = 8

// ShareQueryParam is the URL query parameter carrying a share token.
const ShareQueryParam = "share"

const shareAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateShareID returns a random lowercase base-36 token. It is not
// cryptographically secure; uniqueness relies on improbability alone.
func GenerateShareID() string {
	b := make([]byte, ShareIDLength)
	for i := range b {
		b[i] = shareAlphabet[rand.IntN(len(shareAlphabet))]
	}
	return string(b)
}

// ShareLink appends the share token to base as a query parameter.
func ShareLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing share base URL %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ShareQueryParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseShareToken extracts a share token from either a bare token or a share
// link. Full-width characters entered through an IME are folded to ASCII.
func ParseShareToken(input string) string {
	s := strings.TrimSpace(width.Fold.String(input))
	if !strings.Contains(s, ShareQueryParam+"=") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if tok := u.Query().Get(ShareQueryParam); tok != "" {
		return strings.TrimSpace(tok)
	}
	return s
}
