package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a title into a URL slug, dropping Vietnamese diacritics:
// "Sân Cầu Lông Đống Đa" -> "san-cau-long-dong-da".
func Slugify(title string) string {
	plain := RemoveAccents(title)

	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(plain) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			lastDash = false
		case !lastDash:
			sb.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(sb.String(), "-")
}

// RemoveAccents strips combining marks: "Sân Đống Đa" -> "San Dong Da"
func RemoveAccents(s string) string {
	// đ/Đ is a distinct letter, not a composed one, so NFD does not split it
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return plain
}
