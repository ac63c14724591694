package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// letters that do not decompose into an ASCII base plus combining marks
var foldedLetters = map[rune]string{
	'ß': "ss",
	'ı': "i",
	'ł': "l",
	'đ': "d",
	'ø': "o",
	'æ': "ae",
	'œ': "oe",
}

// MaxLength bounds generated slugs so they fit the varchar(200) columns.
const MaxLength = 200

// Make turns an arbitrary title into a URL slug: diacritics are folded to
// ASCII, anything that is not a letter or digit becomes a single hyphen.
func Make(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case foldedLetters[r] != "":
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteString(foldedLetters[r])
		default:
			pendingHyphen = true
		}
	}

	out := b.String()
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return len(s) <= MaxLength && pattern.MatchString(s)
}

// Resolve returns explicit when set, otherwise a slug derived from fallback.
func Resolve(explicit, fallback string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return explicit
	}
	return Make(fallback)
}
