// Package isinResolver converts ISIN codes to trading tickers using a static table.
package isinResolver

import (
	"regexp"
	"strings"
)

var isinRegexp = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{10}$`)

// IsValidISIN checks only the shape of the code: 2 letters followed by 10 alphanumerics.
// The check digit is not verified.
func IsValidISIN(code string) bool {
	return isinRegexp.MatchString(normalize(code))
}

// IsinToSymbol returns the ticker mapped to isin. ok is false when the ISIN is unknown.
func IsinToSymbol(isin string) (symbol string, ok bool) {
	symbol, ok = isinToSymbol[normalize(isin)]
	return symbol, ok
}

// CountryFromISIN returns a display label for the country prefix of isin.
// Unknown prefixes are returned as is.
func CountryFromISIN(isin string) string {
	code := normalize(isin)
	if len(code) > 2 {
		code = code[:2]
	}
	if label, ok := countries[code]; ok {
		return label
	}
	return code
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
