package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var digitWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var wordSplit = regexp.MustCompile(`[\s.,:;]+`)

// Matcher compares catalog names with a spoken query.
type Matcher struct {
	strict *regexp.Regexp
	fuzzy  *regexp.Regexp
}

// NewMatcher builds the strict and fuzzy expressions for query.
//
// Strict requires the whole name to be the query (an optional leading "the"
// aside). Fuzzy requires every query word, in order, as a whole word anywhere
// in the name. Single digits match either as numerals or spelled out.
func NewMatcher(query string) *Matcher {
	var words []string
	for _, w := range wordSplit.Split(query, -1) {
		if w != "" {
			words = append(words, wordPattern(w))
		}
	}

	bounded := make([]string, len(words))
	for i, w := range words {
		bounded[i] = `\b` + w + `\b`
	}

	return &Matcher{
		strict: regexp.MustCompile(`(?i)^(?:the )?` + strings.Join(words, " ") + `$`),
		fuzzy:  regexp.MustCompile(`(?i)` + strings.Join(bounded, ".*")),
	}
}

func wordPattern(w string) string {
	quoted := regexp.QuoteMeta(w)
	for i, dw := range digitWords {
		if strings.EqualFold(w, dw) || w == strconv.Itoa(i) {
			return "(?:" + strconv.Itoa(i) + "|" + dw + ")"
		}
	}
	return quoted
}

// Strict reports whether name is an exact match.
func (m *Matcher) Strict(name string) bool { return m.strict.MatchString(name) }

// Fuzzy reports whether name contains the query words in order.
func (m *Matcher) Fuzzy(name string) bool { return m.fuzzy.MatchString(name) }

// Filter returns the strict matches, or the fuzzy matches when there are no
// strict ones.
func (m *Matcher) Filter(items []Item) []Item {
	if out := filter(items, m.Strict); len(out) > 0 {
		return out
	}
	return filter(items, m.Fuzzy)
}

func filter(items []Item, keep func(string) bool) []Item {
	var out []Item
	for _, it := range items {
		if keep(it.Name) {
			out = append(out, it)
		}
	}
	return out
}
