package reply

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/locatour/tourguide/core"
)

// snippetLimit caps how much of a record's full description is quoted in a
// single-result response.
const snippetLimit = 80

var noResultFreshTemplates = []string{
	"I couldn't find anything matching that. Could you try different keywords, like a place name or a dish?",
	"Hmm, nothing came up for that. Maybe ask about a specific town or attraction in Ilocos?",
	"I don't have results for that one. You could try asking about beaches, churches, or local food.",
	"Sorry, I couldn't match that to anything I know. Try rephrasing or naming a town in Ilocos.",
}

var noResultFollowupTemplates = []string{
	"I couldn't find anything else along those lines. Want to explore a different place or type of food?",
	"That's all I had on that topic. Maybe we can look at another town or a different kind of attraction?",
	"Nothing more came up for that. Feel free to ask about somewhere else in Ilocos.",
}

const exhaustedResponse = "I've shown you all the options I have for that. " +
	"Would you like to explore a different place or another type of attraction?"

var singleFollowupTemplates = []string{
	"You might also like %s in %s.",
	"Another one worth checking out is %s in %s.",
	"Here's one more for you: %s, over in %s.",
}

var multiFreshTemplates = []string{
	"Here's what I found: %s.",
	"A few places come to mind: %s.",
	"You have some options: %s.",
}

var multiFollowupTemplates = []string{
	"You could also consider %s.",
	"Some other options are %s.",
	"If you want more, there's %s.",
}

// Composer turns ranked results into a response string. Template choice is
// randomized so repeated queries don't feel canned; inject a seeded source
// in tests for determinism.
type Composer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithComposerRandSource replaces the default time-seeded random source.
func WithComposerRandSource(src rand.Source) ComposerOption {
	return func(c *Composer) {
		c.rnd = rand.New(src)
	}
}

// NewComposer creates a response composer.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders the results into a response. The branch taken depends on
// the result count, whether the query continued an earlier topic, and
// whether the session has already exhausted its alternatives.
func (c *Composer) Compose(results []*core.Record, isFollowup, alternativesExhausted bool) string {
	switch {
	case len(results) == 0 && alternativesExhausted:
		return exhaustedResponse
	case len(results) == 0 && isFollowup:
		return c.pick(noResultFollowupTemplates)
	case len(results) == 0:
		return c.pick(noResultFreshTemplates)
	case len(results) == 1 && isFollowup:
		r := results[0]
		return fmt.Sprintf(c.pick(singleFollowupTemplates), r.Name, r.Location)
	case len(results) == 1:
		return c.composeSingle(results[0])
	case isFollowup:
		return fmt.Sprintf(c.pick(multiFollowupTemplates), c.nameList(results))
	default:
		return fmt.Sprintf(c.pick(multiFreshTemplates), c.nameList(results))
	}
}

func (c *Composer) composeSingle(r *core.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is in %s.", r.Name, r.Location)
	if best := strings.TrimSpace(r.BestTimeToVisit); best != "" && !core.IsPlaceholder(best) {
		fmt.Fprintf(&b, " Best time to visit: %s.", best)
	}
	if snippet := snippetOf(r.FullDescription); snippet != "" {
		fmt.Fprintf(&b, " %s", snippet)
	} else if tags := r.DescriptionTags(); len(tags) > 0 {
		fmt.Fprintf(&b, " Known for: %s.", strings.Join(tags, ", "))
	}
	return b.String()
}

// nameList renders up to two names, summarizing the rest as a count.
func (c *Composer) nameList(results []*core.Record) string {
	names := make([]string, 0, 2)
	for _, r := range results {
		if len(names) == 2 {
			break
		}
		names = append(names, r.Name)
	}
	rest := len(results) - len(names)
	switch {
	case rest > 0:
		return fmt.Sprintf("%s, and %d more", strings.Join(names, ", "), rest)
	case len(names) == 2:
		return names[0] + " and " + names[1]
	default:
		return names[0]
	}
}

func snippetOf(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || core.IsPlaceholder(text) {
		return ""
	}
	if len(text) <= snippetLimit {
		return text
	}
	return text[:snippetLimit-3] + "..."
}

func (c *Composer) pick(templates []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return templates[c.rnd.Intn(len(templates))]
}
