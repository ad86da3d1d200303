package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	textPipeline = Pipeline{
		stripDiacritics,
		strings.ToLower,
		strings.TrimSpace,
	}

	numberPipeline = Pipeline{
		Normalize,
		removeSpaces,
	}
)

// stripDiacritics decomposes s and drops the combining marks. A transformer
// chain keeps state, so one is built per call.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Normalize returns the comparable form of a free-text field.
func Normalize(s string) string {
	return textPipeline.Apply(s)
}

// NormalizeNumber returns the comparable form of a house number or postal code.
func NormalizeNumber(s string) string {
	return numberPipeline.Apply(s)
}

// ContainsFold reports whether the normalized haystack contains the normalized
// needle. An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// EqualFold compares two free-text values in their normalized forms.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// EqualNumber compares two numeric fields in their normalized forms.
func EqualNumber(a, b string) bool {
	return NormalizeNumber(a) == NormalizeNumber(b)
}
