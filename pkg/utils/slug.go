package utils

import (
	"regexp"
	"strings"
)

var slugSeparators = regexp.MustCompile("[^a-z0-9]+")

// foldTable maps the accented Latin characters that appear in catalog names
// to their ASCII equivalents. Characters outside this table pass through
// unchanged; no general Unicode normalization is applied.
var foldTable = map[rune]rune{
	'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ñ': 'n',
}

// GenerateSlug derives a URL-safe identifier from a human-readable name:
// lowercase alphanumerics separated by single hyphens, with no boundary
// hyphens. A name that collapses entirely to separators yields "".
func GenerateSlug(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	text = foldAccents(text)

	text = slugSeparators.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}

func foldAccents(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, char := range text {
		if replacement, ok := foldTable[char]; ok {
			result.WriteRune(replacement)
		} else {
			result.WriteRune(char)
		}
	}
	return result.String()
}
