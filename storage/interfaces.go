package storage

import (
	"context"

	"github.com/locatour/tourguide/core"
)

// RecordStore provides read access to the tourism dataset.
// Implementations must be safe for concurrent readers, and the snapshot a
// single call observes must be internally consistent.
type RecordStore interface {
	// GetByID retrieves a single record by its stable string ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetByID(ctx context.Context, id string) (*core.Record, error)

	// ScanAll returns every record in the dataset.
	ScanAll(ctx context.Context) ([]*core.Record, error)
}

// Index answers exact and substring lookups over the dataset. Any method may
// fail per call; callers tolerate individual failures and fall back to a
// full scan.
type Index interface {
	// FindByKeyword returns IDs of records whose description tags contain
	// the keyword exactly.
	FindByKeyword(ctx context.Context, keyword string) ([]string, error)

	// FindByNameSubstring returns IDs of records whose stemmed name contains
	// the text.
	FindByNameSubstring(ctx context.Context, text string) ([]string, error)

	// FindByLocation returns IDs of records whose stemmed location contains
	// the text.
	FindByLocation(ctx context.Context, text string) ([]string, error)

	// FindByType returns IDs of records with the exact type value.
	FindByType(ctx context.Context, itemType string) ([]string, error)

	// FindByNamePrefix returns IDs of records whose stemmed name starts with
	// the prefix.
	FindByNamePrefix(ctx context.Context, prefix string) ([]string, error)
}

// ChatLogRepository persists conversation exchanges. Implementations must be
// thread-safe; appends are decoupled from the search pipeline and may run
// asynchronously.
type ChatLogRepository interface {
	// AppendEntries persists one or more chat entries. Entries with ID=0 get
	// a content-based ID; InsertedAt is set on write. Re-appending an entry
	// with the same content overwrites the previous copy.
	AppendEntries(ctx context.Context, entries ...*core.ChatEntry) ([]*core.ChatEntry, error)

	// GetSessionEntries retrieves the entries of one session, oldest first.
	GetSessionEntries(ctx context.Context, sessionID string) ([]*core.ChatEntry, error)

	// GetRecentEntries retrieves the N most recent entries across all
	// sessions, newest first.
	GetRecentEntries(ctx context.Context, limit int) ([]*core.ChatEntry, error)

	// DeleteSessionEntries removes every entry of a session and reports how
	// many were deleted.
	DeleteSessionEntries(ctx context.Context, sessionID string) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
