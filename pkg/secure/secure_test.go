package secure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hasher := NewHasher("unit-secret", bcrypt.MinCost)

	digest, err := hasher.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", digest)

	assert.True(t, hasher.VerifyPassword("correct horse", digest))
	assert.False(t, hasher.VerifyPassword("wrong horse", digest))
}

func TestHashPasswordDependsOnSecret(t *testing.T) {
	first := NewHasher("secret-a", bcrypt.MinCost)
	second := NewHasher("secret-b", bcrypt.MinCost)

	digest, err := first.HashPassword("pass123")
	require.NoError(t, err)

	assert.True(t, first.VerifyPassword("pass123", digest))
	assert.False(t, second.VerifyPassword("pass123", digest))
}

func TestHashPasswordSaltsDigests(t *testing.T) {
	hasher := NewHasher("unit-secret", bcrypt.MinCost)

	a, err := hasher.HashPassword("same input")
	require.NoError(t, err)
	b, err := hasher.HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, hasher.VerifyPassword("same input", a))
	assert.True(t, hasher.VerifyPassword("same input", b))
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"angle brackets", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"backticks", "a`b`c", "abc"},
		{"control chars", "a\x00b\x07c", "abc"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"trims", "  padded  ", "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeInput(tc.in))
		})
	}
}

func TestSanitizeInputIsIdempotent(t *testing.T) {
	in := "  <b>Calculus` I</b>  "
	once := SanitizeInput(in)
	assert.Equal(t, once, SanitizeInput(once))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("student@uta.edu.ec"))
	assert.True(t, IsValidEmail("first.last+tag@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestIsValidNationalID(t *testing.T) {
	assert.True(t, IsValidNationalID("1804567890"))
	assert.False(t, IsValidNationalID("180456789"))
	assert.False(t, IsValidNationalID("18045678901"))
	assert.False(t, IsValidNationalID("18045678x0"))
}

func TestPasswordFloors(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))

	assert.True(t, IsValidRegisterPassword("123456"))
	assert.False(t, IsValidRegisterPassword("12345"))
}

func TestIsFutureDateTime(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	assert.True(t, IsFutureDateTime(tomorrow, "10:00"))
	assert.True(t, IsFutureDateTime(tomorrow, ""))
	assert.False(t, IsFutureDateTime(yesterday, "10:00"))
	assert.False(t, IsFutureDateTime("not-a-date", "10:00"))
	assert.False(t, IsFutureDateTime(tomorrow, "25:99"))
}
