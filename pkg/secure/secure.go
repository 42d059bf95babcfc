package secure

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password length floors. Registration historically accepted shorter
// passwords than profile changes; both limits are kept explicit.
const (
	MinPasswordLen         = 8
	MinRegisterPasswordLen = 6
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Hasher derives and verifies password digests. The application-wide secret
// peppers the plaintext before bcrypt so digests are useless without the
// server configuration, while bcrypt's per-digest salt keeps verification
// working against any stored digest.
type Hasher struct {
	secret []byte
	cost   int
}

// NewHasher builds a Hasher from the configured secret. A cost of zero falls
// back to bcrypt.DefaultCost.
func NewHasher(secret string, cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{secret: []byte(secret), cost: cost}
}

// HashPassword returns a one-way digest of the plaintext.
func (h *Hasher) HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(h.pepper(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext matches the stored digest.
func (h *Hasher) VerifyPassword(plaintext, storedDigest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedDigest), h.pepper(plaintext)) == nil
}

// pepper keyes the plaintext with the application secret. The HMAC output is
// base64 encoded because bcrypt rejects NUL bytes and caps input at 72 bytes.
func (h *Hasher) pepper(plaintext string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	_, _ = mac.Write([]byte(plaintext))
	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}

// SanitizeInput neutralizes characters unsafe for storage or display. The
// transform is idempotent: sanitizing already-sanitized text is a no-op.
func SanitizeInput(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '<' || r == '>' || r == '`':
			continue
		case unicode.IsControl(r) && r != '\n' && r != '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// IsValidEmail performs a standard address-shape check.
func IsValidEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// IsValidNationalID requires exactly ten numeric digits.
func IsValidNationalID(text string) bool {
	if len(text) != 10 {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidPassword enforces the profile-change password floor.
func IsValidPassword(text string) bool {
	return len(text) >= MinPasswordLen
}

// IsValidRegisterPassword enforces the shorter self-registration floor.
func IsValidRegisterPassword(text string) bool {
	return len(text) >= MinRegisterPasswordLen
}

// IsFutureDateTime reports whether the date (YYYY-MM-DD) and clock time
// (HH:MM) lie strictly in the future. An empty clock time means end of day.
// Malformed input is never in the future.
func IsFutureDateTime(date, clock string) bool {
	if clock == "" {
		clock = "23:59"
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return false
	}
	return at.After(time.Now())
}
