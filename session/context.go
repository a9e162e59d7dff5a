package session

import (
	"strings"
	"sync"
	"time"

	"github.com/locatour/tourguide/core"
)

// Turn is one recorded exchange: what the user asked, the derived keywords,
// the response text, and the records shown.
type Turn struct {
	Query     string
	Keywords  []string
	Response  string
	Items     []*core.Record
	Timestamp time.Time
}

// Snapshot is a consistent view of the context fields the orchestrator needs
// for one search call, taken under a single lock.
type Snapshot struct {
	LastQuery             string
	LastKeywords          []string
	LastItems             []*core.Record
	ContextKeywords       []string
	MentionedIDs          map[string]bool
	CurrentTopic          string
	ExpectingFollowup     bool
	AlternativesExhausted bool
	TurnCount             int
}

// Summary is the JSON-friendly session digest exposed to callers.
type Summary struct {
	SessionID          string   `json:"session_id"`
	TurnCount          int      `json:"turn_count"`
	CurrentTopic       string   `json:"current_topic"`
	LastItemNames      []string `json:"last_item_names"`
	PreferredLocations []string `json:"preferred_locations"`
	PreferredTypes     []string `json:"preferred_types"`
	RecurringKeywords  []string `json:"recurring_keywords"`
	ExpectingFollowup  bool     `json:"expecting_followup"`
}

// Context is the conversational memory of a single session. All exported
// methods are safe for concurrent use; reads are atomic with respect to
// RecordTurn.
type Context struct {
	mu sync.Mutex

	sessionID  string
	maxHistory int
	clock      Clock

	history []Turn

	lastQuery    string
	lastKeywords []string
	lastItems    []*core.Record

	mentionedItems map[string]bool

	prefLocations map[string]bool
	prefTypes     map[string]bool
	prefKeywords  map[string]bool

	currentTopic          string
	expectingFollowup     bool
	alternativesExhausted bool

	createdAt    time.Time
	lastActivity time.Time
	turnCount    int
}

func newContext(sessionID string, maxHistory int, clock Clock) *Context {
	now := clock.Now()
	return &Context{
		sessionID:      sessionID,
		maxHistory:     maxHistory,
		clock:          clock,
		mentionedItems: make(map[string]bool),
		prefLocations:  make(map[string]bool),
		prefTypes:      make(map[string]bool),
		prefKeywords:   make(map[string]bool),
		createdAt:      now,
		lastActivity:   now,
	}
}

// SessionID returns the opaque session identifier.
func (c *Context) SessionID() string {
	return c.sessionID
}

// RecordTurn appends a turn to history, evicting the oldest beyond capacity,
// and updates the derived state. Preferences and topic are only derived from
// turns that produced at least one result; an empty turn clears
// expectingFollowup and leaves the topic unchanged.
func (c *Context) RecordTurn(query string, keywords []string, response string, items []*core.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.turnCount++
	c.lastActivity = now

	c.history = append(c.history, Turn{
		Query:     query,
		Keywords:  keywords,
		Response:  response,
		Items:     items,
		Timestamp: now,
	})
	if len(c.history) > c.maxHistory {
		c.history = c.history[len(c.history)-c.maxHistory:]
	}

	c.lastQuery = query
	c.lastKeywords = keywords
	c.lastItems = items

	for _, item := range items {
		if item != nil && item.Id != "" {
			c.mentionedItems[item.Id] = true
		}
	}

	if len(items) > 0 {
		c.extractPreferences(keywords, items)
		c.currentTopic = items[0].Type
		c.expectingFollowup = true
		c.alternativesExhausted = false
	} else {
		c.expectingFollowup = false
	}
}

// extractPreferences accumulates location/type/keyword preferences from a
// turn that produced results. Caller holds the lock.
func (c *Context) extractPreferences(keywords []string, items []*core.Record) {
	for _, item := range items {
		if loc := item.NormalizedLocation(); loc != "" {
			c.prefLocations[loc] = true
		}
		if typ := item.NormalizedType(); typ != "" {
			c.prefTypes[typ] = true
		}
	}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			c.prefKeywords[kw] = true
		}
	}
}

// contextKeywordTurns bounds how many recent turns contribute keywords when a
// follow-up merges in conversation context.
const contextKeywordTurns = 3

// SnapshotState returns a consistent copy of the state one search call needs.
func (c *Context) SnapshotState() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		LastQuery:             c.lastQuery,
		LastKeywords:          append([]string(nil), c.lastKeywords...),
		LastItems:             append([]*core.Record(nil), c.lastItems...),
		CurrentTopic:          c.currentTopic,
		ExpectingFollowup:     c.expectingFollowup,
		AlternativesExhausted: c.alternativesExhausted,
		TurnCount:             c.turnCount,
	}

	snap.MentionedIDs = make(map[string]bool, len(c.mentionedItems))
	for id := range c.mentionedItems {
		snap.MentionedIDs[id] = true
	}

	start := len(c.history) - contextKeywordTurns
	if start < 0 {
		start = 0
	}
	seen := make(map[string]bool)
	for _, turn := range c.history[start:] {
		for _, kw := range turn.Keywords {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			snap.ContextKeywords = append(snap.ContextKeywords, kw)
		}
	}

	return snap
}

// Follow-up heuristics; no ML.
var (
	followupStarters = []string{
		"another", "different", "more", "other", "alternative",
		"also", "else", "besides",
	}
	followupPhrases = []string{"instead", "similar", "like that", "like this"}
	pronouns        = []string{"it", "that", "this", "there"}
)

// IsFollowup reports whether the query continues the prior turn's topic
// rather than starting a new search.
func (c *Context) IsFollowup(query string) bool {
	lowered := strings.ToLower(strings.TrimSpace(query))

	for _, starter := range followupStarters {
		if strings.HasPrefix(lowered, starter) {
			return true
		}
	}

	for _, phrase := range followupPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}

	words := strings.Fields(lowered)
	if len(words) <= 5 {
		for _, word := range words {
			for _, pronoun := range pronouns {
				if word == pronoun {
					return true
				}
			}
		}
	}

	// A very short query right after results is presumed a continuation.
	if len(words) <= 3 {
		c.mu.Lock()
		hasItems := len(c.lastItems) > 0
		c.mu.Unlock()
		if hasItems {
			return true
		}
	}

	return false
}

// MarkAlternativesExhausted records that an alternatives request found no
// novel candidates. The flag clears on the next turn that produces results.
func (c *Context) MarkAlternativesExhausted() {
	c.mu.Lock()
	c.alternativesExhausted = true
	c.mu.Unlock()
}

// AlternativesExhausted reports the current flag value.
func (c *Context) AlternativesExhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alternativesExhausted
}

// idleFor reports how long the session has been inactive.
func (c *Context) idleFor(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastActivity)
}

// reset clears history and every piece of derived state, zeroes the counters,
// and stamps a fresh activity time. The session itself survives.
func (c *Context) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = nil
	c.lastQuery = ""
	c.lastKeywords = nil
	c.lastItems = nil
	c.mentionedItems = make(map[string]bool)
	c.prefLocations = make(map[string]bool)
	c.prefTypes = make(map[string]bool)
	c.prefKeywords = make(map[string]bool)
	c.currentTopic = ""
	c.expectingFollowup = false
	c.alternativesExhausted = false
	c.turnCount = 0
	c.lastActivity = c.clock.Now()
}

// Summarize builds the caller-facing digest of the session.
func (c *Context) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	summary := Summary{
		SessionID:          c.sessionID,
		TurnCount:          c.turnCount,
		CurrentTopic:       c.currentTopic,
		LastItemNames:      make([]string, 0, len(c.lastItems)),
		PreferredLocations: sortedKeys(c.prefLocations),
		PreferredTypes:     sortedKeys(c.prefTypes),
		RecurringKeywords:  sortedKeys(c.prefKeywords),
		ExpectingFollowup:  c.expectingFollowup,
	}
	for _, item := range c.lastItems {
		if item != nil {
			summary.LastItemNames = append(summary.LastItemNames, item.Name)
		}
	}
	return summary
}
