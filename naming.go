package schema

import (
	"strings"
	"unicode"
)

// NamingPolicy transforms a declared field or type name into its encoded
// name. Policies run during derivation, before any explicit EncodedName
// override from field metadata.
type NamingPolicy func(name string) string

// Identity keeps the declared name unchanged.
func Identity(name string) string { return name }

// SnakeCase converts CamelCase names to snake_case. Acronym runs are kept
// together: "HTTPStatus" becomes "http_status", "userID" becomes "user_id".
func SnakeCase(name string) string { return separateWords(name, '_') }

// KebabCase converts CamelCase names to kebab-case.
func KebabCase(name string) string { return separateWords(name, '-') }

func separateWords(name string, sep rune) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prev := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != rune(sep)
			// End of an acronym run: "HTTPStatus" splits before "Status".
			acronymEnd := i > 0 && unicode.IsUpper(runes[i-1]) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev || acronymEnd {
				b.WriteRune(sep)
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
