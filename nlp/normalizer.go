package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stop words removed from every query: common English function words plus
// chat-filler verbs ("show me", "I want to find", ...). Tokens of length <= 2
// are dropped separately, before this set is consulted.
var stopWords = map[string]bool{
	"i": true, "me": true, "my": true, "myself": true, "we": true, "our": true,
	"ours": true, "ourselves": true, "you": true, "your": true, "yours": true,
	"yourself": true, "yourselves": true, "he": true, "him": true, "his": true,
	"himself": true, "she": true, "her": true, "hers": true, "herself": true,
	"it": true, "its": true, "itself": true, "they": true, "them": true,
	"their": true, "theirs": true, "themselves": true, "what": true,
	"which": true, "who": true, "whom": true, "this": true, "that": true,
	"these": true, "those": true, "am": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "having": true, "do": true,
	"does": true, "did": true, "doing": true, "a": true, "an": true,
	"the": true, "and": true, "but": true, "if": true, "or": true,
	"because": true, "as": true, "until": true, "while": true, "of": true,
	"at": true, "by": true, "for": true, "with": true, "about": true,
	"against": true, "between": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true,
	"below": true, "to": true, "from": true, "up": true, "down": true,
	"in": true, "out": true, "on": true, "off": true, "over": true,
	"under": true, "again": true, "further": true, "then": true,
	"once": true, "here": true, "there": true, "when": true, "where": true,
	"why": true, "how": true, "all": true, "both": true, "each": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "nor": true, "not": true, "only": true,
	"own": true, "same": true, "so": true, "than": true, "too": true,
	"very": true, "s": true, "t": true, "can": true, "will": true,
	"just": true, "don": true, "should": true, "now": true,
	// chat-filler verbs
	"want": true, "find": true, "search": true, "show": true, "tell": true,
	"get": true, "give": true, "see": true, "looking": true, "look": true,
	"need": true, "like": true, "would": true, "could": true, "please": true,
}

// foldDiacritics strips combining marks so that accented place names ("Mañosa",
// "Maira-ira") tokenize to stable ASCII-ish forms.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Tokenize lowercases the text, folds diacritics, replaces every
// non-alphanumeric rune with a space, and splits on whitespace.
func Tokenize(text string) []string {
	lowered := strings.ToLower(foldDiacritics(text))
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, lowered)
	return strings.Fields(cleaned)
}

// removeStopWords drops stop words and tokens of length <= 2.
func removeStopWords(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// Keywords runs the full pipeline: tokenize, remove stop words, stem, and
// de-duplicate preserving first occurrence. Empty or punctuation-only input
// yields an empty slice; callers treat that as "no match possible", not an
// error.
func Keywords(text string) []string {
	tokens := removeStopWords(Tokenize(text))

	seen := make(map[string]bool, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		stem := Stem(tok)
		if seen[stem] {
			continue
		}
		seen[stem] = true
		keywords = append(keywords, stem)
	}
	return keywords
}

// Normalize is the full contract: the keyword sequence plus the detected
// location, reported in parallel. Detection never consumes the location token
// from the keyword stream.
func Normalize(text string) (keywords []string, detectedLocation string) {
	return Keywords(text), DetectLocation(text)
}
