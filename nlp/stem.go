package nlp

import "strings"

// Irregular forms that the suffix rules would mangle. Lookup happens before
// any rule is tried.
var irregularStems = map[string]string{
	"beaches":  "beach",
	"churches": "church",
	"dishes":   "dish",
	"places":   "place",
	"foods":    "food",
	"spots":    "spot",
	"rocks":    "rock",
	"caves":    "cave",
	"fried":    "fry",
	"grilled":  "grill",
	"stuffed":  "stuff",
	"cooked":   "cook",
}

// suffixRules is an ordered rewrite table; only the first matching rule fires.
var suffixRules = []struct {
	suffix      string
	replacement string
}{
	{"sses", "ss"}, // processes -> process
	{"ies", "i"},   // ponies -> poni
	{"ss", "ss"},   // stress -> stress
	{"s", ""},      // cats -> cat
	{"ed", ""},     // played -> play
	{"ing", ""},    // playing -> play
	{"ly", ""},     // quickly -> quick
	{"ful", ""},    // beautiful -> beauti
}

// Stem lowercases a word and strips one known suffix. Irregular forms take
// precedence over the rule table, and at most one rule fires per word, so
// stemming is a fixed point after a single pass for every covered ending.
func Stem(word string) string {
	word = strings.ToLower(word)

	if stem, ok := irregularStems[word]; ok {
		return stem
	}

	for _, rule := range suffixRules {
		if strings.HasSuffix(word, rule.suffix) {
			return word[:len(word)-len(rule.suffix)] + rule.replacement
		}
	}

	return word
}

// StemPhrase stems every token of a phrase and rejoins with single spaces.
// Used to prepare record fields for substring comparison against stemmed
// query keywords.
func StemPhrase(text string) string {
	tokens := Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = Stem(tok)
	}
	return strings.Join(tokens, " ")
}
