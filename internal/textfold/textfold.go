// Package textfold normalizes text for case-insensitive substring search.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the Unicode case-folded, NFC-normalized form of s.
// Two strings match case-insensitively when their folded forms are equal.
func Fold(s string) string {
	// A Caser carries state and must not be shared across goroutines.
	return norm.NFC.String(cases.Fold().String(s))
}

// Terms splits a search string on whitespace and commas and folds each term.
// Empty terms are dropped, so a blank query yields no terms.
func Terms(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, Fold(f))
	}
	return terms
}
