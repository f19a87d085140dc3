package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt extracts the plain text from an HTML fragment and truncates it.
// Whitespace runs are collapsed to single spaces.
func Excerpt(fragment string, maxRunes int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Trunc(fragment, maxRunes)
	}
	return Trunc(strings.Join(strings.Fields(doc.Text()), " "), maxRunes)
}
