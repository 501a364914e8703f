package smartbiz

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// stripMarks removes combining diacritics: "Điện thoại" becomes "Đien thoai".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s without diacritics and in lower case, for accent
// insensitive search. "đ" folds to "d".
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
	return strings.ToLower(out)
}

// GenerateSKU derives a SKU from a product name: the initials of its words,
// upper cased and without diacritics, followed by a dash and three random
// base 36 characters. "iPhone 15 Pro Max" gives "I1PM-" and a random suffix.
func GenerateSKU(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	var initials strings.Builder
	for _, word := range strings.Fields(Fold(name)) {
		r := []rune(strings.ToUpper(word))[0]
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			initials.WriteRune(r)
		}
	}
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return initials.String() + "-" + string(suffix)
}
