package domain

import "strings"

// Place is a single row returned by the geo lookup provider
type Place struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
}

// Flag returns the emoji flag for the place's country code, or "" when the
// code is not a two-letter ISO 3166 alpha-2 code
func (p Place) Flag() string {
	code := strings.ToUpper(strings.TrimSpace(p.CountryCode))
	if len(code) != 2 {
		return ""
	}

	var b strings.Builder
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ""
		}
		// Regional indicator symbols start at U+1F1E6 for 'A'
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}

// Page is one response from the provider: the requested slice of items and
// the size of the whole result set
type Page struct {
	Items      []Place
	TotalCount int
}

// Empty reports whether the page carries no items
func (p Page) Empty() bool {
	return len(p.Items) == 0
}
