package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSHA256KnownVector(t *testing.T) {
	// RFC 4231 test case 2
	got := HMACSHA256Hex("Jefe", "what do ya want for nothing?")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestHMACSHA512KnownVector(t *testing.T) {
	got := HMACSHA512Hex("Jefe", "what do ya want for nothing?")
	assert.Equal(t, "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea2505549758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737", got)
}

func TestEqualHexIgnoresCase(t *testing.T) {
	sig := HMACSHA256Hex("k", "data")
	assert.True(t, EqualHex(sig, strings.ToUpper(sig)))
	assert.False(t, EqualHex(sig, ""))
	assert.False(t, EqualHex(sig, HMACSHA256Hex("k", "other")))
}
