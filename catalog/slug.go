package catalog

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL-safe slug from a product name: diacritics are
// stripped, everything is lowercased, and runs of non-alphanumeric
// characters collapse into single hyphens.
// "Vestido Florê Midi" -> "vestido-flore-midi".
func Slugify(name string) string {
	stripped := stripDiacritics(name)

	var b strings.Builder
	b.Grow(len(stripped))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(stripped) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// stripDiacritics decomposes the string and drops combining marks.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

const skuCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSKU builds a stock-keeping unit from the category prefix plus a
// random 6-character suffix, e.g. "VES-K3M9QH".
func GenerateSKU(category Category) string {
	prefix := strings.ToUpper(stripDiacritics(string(category)))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("catalog: generate sku: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = skuCharset[int(b)%len(skuCharset)]
	}

	return prefix + "-" + string(buf)
}
