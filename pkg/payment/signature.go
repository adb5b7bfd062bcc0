// Package payment holds the signing primitives shared by the gateway adapters.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
)

func HMACHex(newHash func() hash.Hash, key, data string) string {
	mac := hmac.New(newHash, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func HMACSHA256Hex(key, data string) string {
	return HMACHex(sha256.New, key, data)
}

func HMACSHA512Hex(key, data string) string {
	return HMACHex(sha512.New, key, data)
}

// EqualHex compares two hex digests ignoring case, in constant time
func EqualHex(expected, provided string) bool {
	provided = strings.TrimSpace(provided)
	if provided == "" {
		return false
	}
	return hmac.Equal([]byte(strings.ToLower(expected)), []byte(strings.ToLower(provided)))
}
