// Package normalize rewrites non-Western numeral scripts to ASCII digits so
// that downstream parsing only ever sees 0-9.
package normalize

import "strings"

// Digits replaces Arabic-Indic (U+0660-U+0669) and Eastern Arabic-Indic
// (U+06F0-U+06F9) digit glyphs with their ASCII equivalents. All other
// characters pass through untouched.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		default:
			return r
		}
	}, s)
}
