package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "1.00", FormatCents(100))
	assert.Equal(t, "140.00", FormatCents(14000))
	assert.Equal(t, "99.99", FormatCents(9999))
	assert.Equal(t, "-12.34", FormatCents(-1234))
}

func TestGenerateBookingRef(t *testing.T) {
	pattern := regexp.MustCompile(`^TRIP-\d{8}-\d{6}-\d{4}$`)

	ref := GenerateBookingRef()
	assert.True(t, pattern.MatchString(ref), "unexpected format: %s", ref)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	assert.NoError(t, err)
	assert.NotEqual(t, "rahasia-sekali", hash)

	assert.True(t, CheckPasswordHash("rahasia-sekali", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}
