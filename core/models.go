package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted chat-log entries.
// It is generated using content-based hashing so that replaying the same
// conversation turn produces the same entry ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record category values used by the tourism dataset.
const (
	TypeTouristSpot = "tourist_spot"
	TypeCuisine     = "cuisine"
)

// placeholder used by the dataset for absent values.
const placeholderNA = "n/a"

// IsPlaceholder reports whether a field value is the dataset's "n/a" marker.
func IsPlaceholder(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), placeholderNA)
}

// Record is a single tourism item: a place to visit or a dish to try.
// Records are owned by the record store and read-only to the search pipeline.
// Every field except Id, Name, Type and Location may be empty.
type Record struct {
	Id                  string
	Name                string
	Type                string
	Location            string
	DescriptionKeywords string // comma-separated tag list
	FullDescription     string
	BestTimeToVisit     string
	RelatedItems        string
	NearestHub          string
}

// DescriptionTags splits the comma-separated keyword list into trimmed,
// lowercased tags. Empty and "n/a" entries are dropped.
func (r *Record) DescriptionTags() []string {
	if r.DescriptionKeywords == "" {
		return nil
	}
	parts := strings.Split(r.DescriptionKeywords, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag != "" && tag != placeholderNA {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SearchableText concatenates the four text fields used by full-scan matching.
func (r *Record) SearchableText() string {
	return r.Name + " " + r.Location + " " + r.DescriptionKeywords + " " + r.FullDescription
}

// NormalizedLocation returns the lowercased, trimmed location, or "" when the
// dataset holds the "n/a" placeholder.
func (r *Record) NormalizedLocation() string {
	loc := strings.ToLower(strings.TrimSpace(r.Location))
	if loc == placeholderNA {
		return ""
	}
	return loc
}

// NormalizedType returns the lowercased, trimmed type, or "" for "n/a".
func (r *Record) NormalizedType() string {
	t := strings.ToLower(strings.TrimSpace(r.Type))
	if t == placeholderNA {
		return ""
	}
	return t
}

// ScoredMatch is a record paired with its relevance score and the matched-field
// trace produced while scoring. Matches are ephemeral, produced per search call.
type ScoredMatch struct {
	Record *Record
	Score  float64
	Trace  []string
}

// ChatEntry is one persisted conversation exchange: the user message, the
// generated response, and the IDs of the records shown.
type ChatEntry struct {
	Id          ID
	SessionID   string
	UserMessage string
	BotResponse string
	MatchedIDs  []string
	Timestamp   time.Time // when the exchange happened
	InsertedAt  time.Time // when the entry was persisted
}

// EntryID derives the content-based ID for a chat entry.
func EntryID(sessionID, userMessage string, timestamp time.Time) ID {
	return IDFromContent(sessionID + "\x00" + userMessage + "\x00" + timestamp.UTC().Format(time.RFC3339Nano))
}
