package reply

import "strings"

// Casual message categories recognized without running a search.
const (
	CasualGreeting  = "greeting"
	CasualThanks    = "thanks"
	CasualHowAreYou = "how_are_you"
	CasualGoodbye   = "goodbye"
)

var greetingPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"kumusta", "musta",
}

var thanksPhrases = []string{
	"thank you", "thanks", "salamat", "thank u", "thx",
}

var howAreYouPhrases = []string{
	"how are you", "how're you", "hows it going", "how's it going",
	"what's up", "whats up",
}

var goodbyePhrases = []string{
	"bye", "goodbye", "see you", "see ya", "paalam", "good night",
}

var greetingResponses = []string{
	"Hello! I'm your Ilocos travel guide. Ask me about places to visit or food to try!",
	"Hi there! Looking for tourist spots or local dishes in Ilocos? Just ask.",
	"Kumusta! I can help you explore Ilocos. Try asking about beaches, churches, or cuisine.",
}

var thanksResponses = []string{
	"You're welcome! Happy to help with anything else about Ilocos.",
	"Anytime! Let me know if you want more recommendations.",
	"Glad I could help. Enjoy your trip!",
}

var howAreYouResponses = []string{
	"I'm doing great, thanks for asking! Ready to help you explore Ilocos.",
	"All good here! What would you like to know about Ilocos?",
}

var goodbyeResponses = []string{
	"Goodbye! Enjoy your Ilocos adventure!",
	"Paalam! Safe travels!",
	"See you next time. Have a great trip!",
}

// resetCommands clear a session's conversational memory when sent as the
// whole message.
var resetCommands = []string{
	"reset", "start over", "start fresh", "new search", "new conversation",
	"clear", "restart",
}

var resetResponses = []string{
	"Alright, starting fresh! What would you like to know about Ilocos?",
	"Done, I've cleared our conversation. Ask me anything about Ilocos.",
}

// DetectCasual classifies a message as small talk. It returns the matched
// category, or "" when the message should go through the search pipeline.
// Matching is whole-message for short phrases and prefix-based for
// greetings, so "hi, where can I swim?" is not swallowed as a greeting.
func DetectCasual(message string) string {
	msg := normalizeCasual(message)
	if msg == "" {
		return ""
	}
	switch {
	case matchesPhrase(msg, howAreYouPhrases):
		return CasualHowAreYou
	case matchesPhrase(msg, thanksPhrases):
		return CasualThanks
	case matchesPhrase(msg, goodbyePhrases):
		return CasualGoodbye
	case matchesPhrase(msg, greetingPhrases):
		return CasualGreeting
	}
	return ""
}

// IsResetCommand reports whether the whole message is a reset command.
func IsResetCommand(message string) bool {
	msg := normalizeCasual(message)
	for _, cmd := range resetCommands {
		if msg == cmd {
			return true
		}
	}
	return false
}

// CasualResponse picks a canned reply for a casual category. Unknown
// categories fall back to a greeting.
func (c *Composer) CasualResponse(category string) string {
	switch category {
	case CasualThanks:
		return c.pick(thanksResponses)
	case CasualHowAreYou:
		return c.pick(howAreYouResponses)
	case CasualGoodbye:
		return c.pick(goodbyeResponses)
	default:
		return c.pick(greetingResponses)
	}
}

// ResetResponse picks a confirmation for a cleared session.
func (c *Composer) ResetResponse() string {
	return c.pick(resetResponses)
}

func normalizeCasual(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	return strings.Trim(msg, "!.?, ")
}

// matchesPhrase matches the whole message, or the message up to the first
// punctuation-free word boundary for multi-word small talk. A casual phrase
// followed by substantive words is not a match so the query still runs.
func matchesPhrase(msg string, phrases []string) bool {
	for _, p := range phrases {
		if msg == p {
			return true
		}
	}
	// Tolerate a trailing vocative such as "thanks po" or "hi there".
	if words := strings.Fields(msg); len(words) <= 3 {
		joined := strings.Join(words, " ")
		for _, p := range phrases {
			if strings.HasPrefix(joined, p+" ") {
				rest := strings.TrimPrefix(joined, p+" ")
				if len(strings.Fields(rest)) <= 1 {
					return true
				}
			}
		}
	}
	return false
}
