package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/voxpense/vocal/internal/model"
)

const (
	numPat = `(\d+(?:\.\d+)?)`
	curPat = `(?:dollars?|bucks?|usd|euros?|eur|pounds?|pound|quid|gbp|rupees?|rs|inr|riyals?|sar|dirhams?|aed|egp|jod|kwd|[$€£₹])`
)

// patternFamily is one rung of the fallback cascade: a compiled pattern plus
// a builder that turns its submatches into a candidate, or reports that the
// match is unusable so the cascade can keep descending.
type patternFamily struct {
	build func(m []string) (model.CandidateItem, bool)
	re    *regexp.Regexp
	name  string
}

// connectorWords may not end a description; a match whose description trails
// off into one of these belongs to a more specific family further down.
var connectorWords = map[string]struct{}{
	"for": {}, "on": {}, "of": {}, "the": {}, "a": {}, "an": {},
	"spent": {}, "paid": {}, "cost": {}, "bought": {}, "purchased": {}, "got": {},
}

func endsWithConnector(desc string) bool {
	words := strings.Fields(strings.ToLower(desc))
	if len(words) == 0 {
		return true
	}
	_, ok := connectorWords[words[len(words)-1]]
	return ok
}

// newItem validates and assembles a regex-sourced candidate. Confidence is
// left at zero; the scorer fills it in later.
func newItem(desc, amountStr, category string) (model.CandidateItem, bool) {
	if endsWithConnector(desc) {
		return model.CandidateItem{}, false
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return model.CandidateItem{}, false
	}
	description := cleanDescription(desc)
	if description == "" {
		return model.CandidateItem{}, false
	}
	return model.CandidateItem{
		Description: description,
		Amount:      amount,
		Category:    category,
		Source:      model.SourceRegex,
	}, true
}

// families make up the cascade, most specific phrasing first within each
// anchor class. Each segment of the input runs the cascade top to bottom and
// stops at the first family that yields a usable item.
var families = []patternFamily{
	{
		name: "words-amount",
		re:   regexp.MustCompile(`(?i)^(.+?)\s+` + numPat + `(?:\s*` + curPat + `)?\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			return newItem(m[1], m[2], "")
		},
	},
	{
		name: "amount-for-words",
		re:   regexp.MustCompile(`(?i)^(?:about\s+|around\s+)?` + numPat + `(?:\s*` + curPat + `)?\s+(?:for|on)\s+(.+?)\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			return newItem(m[2], m[1], "")
		},
	},
	{
		name: "spent-verb",
		re:   regexp.MustCompile(`(?i)\b(?:spent|paid|cost)\s+(?:about\s+|around\s+)?` + numPat + `(?:\s*` + curPat + `)?\s+(?:on|for)\s+(.+?)\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			return newItem(m[2], m[1], "")
		},
	},
	{
		name: "bought-verb",
		re:   regexp.MustCompile(`(?i)\b(?:bought|purchased|got)\s+(.+?)\s+for\s+(?:about\s+|around\s+)?` + numPat + `(?:\s*` + curPat + `)?\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			return newItem(m[1], m[2], "")
		},
	},
	{
		name: "explicit-category",
		re:   regexp.MustCompile(`(?i)^(.+?)\s+` + numPat + `(?:\s*` + curPat + `)?\s+(?:in|under|category)\s+([a-zA-Z &]+?)\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			category, ok := model.CanonicalCategory(m[3])
			if !ok {
				return model.CandidateItem{}, false
			}
			return newItem(m[1], m[2], category)
		},
	},
	{
		name: "amount-words",
		re:   regexp.MustCompile(`(?i)^` + numPat + `\s+(.+?)\s*[.!?]?$`),
		build: func(m []string) (model.CandidateItem, bool) {
			return newItem(m[2], m[1], "")
		},
	},
}

// segmentRe splits an utterance into independent expense phrases.
var segmentRe = regexp.MustCompile(`(?i)\s*(?:,|;|\s+and\s+|\s+then\s+)\s*`)

var firstNumberRe = regexp.MustCompile(numPat)

// ExtractRegex runs the deterministic pattern cascade over normalized text.
// It is total: the result may be empty but extraction itself never fails.
// Regex items carry no confidence; the scorer assigns one downstream.
func ExtractRegex(text string) []model.CandidateItem {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var items []model.CandidateItem
	for _, segment := range segmentRe.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		for _, family := range families {
			m := family.re.FindStringSubmatch(segment)
			if m == nil {
				continue
			}
			if item, ok := family.build(m); ok {
				items = append(items, item)
				break
			}
		}
	}

	if len(items) == 0 {
		if item, ok := lastResort(text); ok {
			items = append(items, item)
		}
	}

	return items
}

// lastResort takes the first numeric token as the amount and everything else
// (minus currency tokens) as the description, so that any utterance with a
// number degrades to "something" rather than zero items.
func lastResort(text string) (model.CandidateItem, bool) {
	loc := firstNumberRe.FindStringIndex(text)
	if loc == nil {
		return model.CandidateItem{}, false
	}

	amount, err := strconv.ParseFloat(text[loc[0]:loc[1]], 64)
	if err != nil || amount <= 0 {
		return model.CandidateItem{}, false
	}

	remainder := text[:loc[0]] + " " + text[loc[1]:]
	description := cleanDescription(remainder)
	if description == "" {
		return model.CandidateItem{}, false
	}

	return model.CandidateItem{
		Description: description,
		Amount:      amount,
		Source:      model.SourceRegex,
	}, true
}
