package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// currencyWords are the currency words recognized in speech. They are
// stripped from descriptions and feed the confidence scorer.
var currencyWords = []string{
	"dollars", "dollar", "bucks", "buck", "usd",
	"euros", "euro", "eur",
	"pounds", "pound", "quid", "gbp",
	"rupees", "rupee", "rs", "inr",
	"riyals", "riyal", "sar",
	"dirhams", "dirham", "aed",
	"egp", "jod", "kwd",
}

var currencyTokenRe = buildCurrencyTokenRe()

func buildCurrencyTokenRe() *regexp.Regexp {
	alts := make([]string, 0, len(currencyWords))
	for _, w := range currencyWords {
		alts = append(alts, regexp.QuoteMeta(w))
	}
	// Currency symbols carry no word boundary; words do.
	return regexp.MustCompile(`(?i)(\b(?:` + strings.Join(alts, "|") + `)\b|[$€£₹])`)
}

// HasCurrencyToken reports whether the text mentions a recognized currency.
func HasCurrencyToken(s string) bool {
	return currencyTokenRe.MatchString(s)
}

// stripCurrencyTokens removes recognized currency words and symbols.
func stripCurrencyTokens(s string) string {
	return currencyTokenRe.ReplaceAllString(s, " ")
}

var spaceRe = regexp.MustCompile(`\s+`)

// cleanDescription strips currency tokens and leftover punctuation, collapses
// whitespace, and capitalizes the first letter.
func cleanDescription(s string) string {
	s = stripCurrencyTokens(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " .,;:!?-")
	return Capitalize(strings.TrimSpace(s))
}

// Capitalize upper-cases the first letter of s, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
