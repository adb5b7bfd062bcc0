package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sân Cầu Lông Đống Đa":          "san-cau-long-dong-da",
		"  Top 10 sân bóng   đá mini! ": "top-10-san-bong-da-mini",
		"Hello, World":                  "hello-world",
		"---":                           "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "nice court", StripHTML(`<b>nice</b> court<script>alert(1)</script>`))
}

func TestSanitizeHTMLKeepsFormatting(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">Hello <strong>there</strong></p><script>alert(1)</script>`)
	assert.Equal(t, "<p>Hello <strong>there</strong></p>", out)
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	assert.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestGenerateAppTransIDPrefix(t *testing.T) {
	id := GenerateAppTransID(mustTime(t, "2024-03-05T20:00:00Z"))
	// 20:00 UTC is already the 6th in GMT+7
	assert.Equal(t, "240306_", id[:7])
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "San Dong Da", RemoveAccents("Sân Đống Đa"))
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0 VND", FormatVND(0))
	assert.Equal(t, "999 VND", FormatVND(999))
	assert.Equal(t, "150.000 VND", FormatVND(150000))
	assert.Equal(t, "1.250.000 VND", FormatVND(1250000))
	assert.Equal(t, "-2.000 VND", FormatVND(-2000))
}
