package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The DJ library export is full of inconsistent spellings; these rules come
// from the cleanup pass the catalog was originally curated with.

var (
	leadingNumbers = regexp.MustCompile(`^\s*\d+\s*`)
	bracketed      = regexp.MustCompile(`\[.*?\]`)

	// Known misspellings in the source library.
	wordFixups = map[string]string{
		"Osvalo": "Osvaldo",
	}

	// "Last, First" entries that must flip to their canonical billing.
	commaFixups = []struct{ from, to string }{
		{"Di Sarli, Carlos", "Carlos Di Sarli"},
		{"De Angelis, Alfredo", "Alfredo De Angelis"},
	}

	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// CleanName removes diacritics and stray punctuation from a title or
// performer name: "Aníbal Troilo" becomes "Anibal Troilo".
func CleanName(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(out), "."))
	for old, fixed := range wordFixups {
		out = strings.ReplaceAll(out, old, fixed)
	}
	return out
}

// CleanTitle applies CleanName plus removal of leading track numbers,
// e.g. "03 La Cumparsita" becomes "La Cumparsita".
func CleanTitle(s string) string {
	return strings.TrimSpace(leadingNumbers.ReplaceAllString(CleanName(s), ""))
}

// CleanAlbum applies CleanName plus removal of bracketed segments like
// "[Remastered 2004]".
func CleanAlbum(s string) string {
	return strings.TrimSpace(bracketed.ReplaceAllString(CleanName(s), ""))
}

// CleanPerformer applies CleanName and reorders "Last, First" billings to
// "First Last". Only flips when the part after the comma looks like a given
// name (at most two words), so "Orquesta Tipica Victor, dir. X" is untouched.
func CleanPerformer(s string) string {
	out := CleanName(s)
	for _, f := range commaFixups {
		out = strings.ReplaceAll(out, f.from, f.to)
	}
	if i := strings.Index(out, ","); i >= 0 {
		last, first := strings.TrimSpace(out[:i]), strings.TrimSpace(out[i+1:])
		if !strings.Contains(first, ",") && len(strings.Fields(first)) <= 2 && first != "" {
			return first + " " + last
		}
	}
	return out
}
