// Package textnorm cleans raw document text before tokenization.
package textnorm

import "strings"

// Normalize collapses every run of whitespace to a single space and trims
// leading and trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
