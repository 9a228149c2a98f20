// Package utils provides utility functions for the application.
package utils

import (
	"regexp"
	"strings"
)

// ukPostcodeRegex matches UK postcodes such as "SW1A 1AA", "M1 1AE" or "LS29AB"
// anywhere inside a free-text address. The outward and inward parts may or may
// not be separated by whitespace.
var ukPostcodeRegex = regexp.MustCompile(`\b([A-Z]{1,2}[0-9][A-Z0-9]?)\s*([0-9][A-Z]{2})\b`)

// DerivePostcode scans an address for a UK postcode and returns it in the
// canonical "OUTWARD INWARD" form. It returns an empty string when the address
// contains no recognizable postcode.
func DerivePostcode(address string) string {
	if address == "" {
		return ""
	}
	m := ukPostcodeRegex.FindStringSubmatch(strings.ToUpper(address))
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}
