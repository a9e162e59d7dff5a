package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/locatour/tourguide/core"
)

func TestChatEntryBasics(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := &core.ChatEntry{
		SessionID:   "sess-1",
		UserMessage: "beaches in Pagudpud",
		BotResponse: "Saud Beach is in Pagudpud.",
		MatchedIDs:  []string{"TS01"},
		Timestamp:   time.Now().UTC(),
	}

	added, err := repo.AppendEntries(ctx, entry)
	if err != nil {
		t.Fatalf("Failed to append entry: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	got, err := repo.GetSessionEntries(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Failed to get session entries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(got))
	}
	if got[0].UserMessage != "beaches in Pagudpud" {
		t.Fatalf("Unexpected message: %q", got[0].UserMessage)
	}
	if len(got[0].MatchedIDs) != 1 || got[0].MatchedIDs[0] != "TS01" {
		t.Fatalf("Unexpected matched IDs: %v", got[0].MatchedIDs)
	}
}

func TestChatEntryContentIDsAreStable(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	ts := time.Now().UTC()

	first := &core.ChatEntry{SessionID: "s", UserMessage: "hi paoay", BotResponse: "a", Timestamp: ts}
	second := &core.ChatEntry{SessionID: "s", UserMessage: "hi paoay", BotResponse: "b", Timestamp: ts}

	if _, err := repo.AppendEntries(ctx, first); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if _, err := repo.AppendEntries(ctx, second); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if first.Id != second.Id {
		t.Fatalf("Expected identical IDs for identical content, got %d vs %d", first.Id, second.Id)
	}

	// Replaying the same exchange overwrites, it doesn't duplicate.
	got, err := repo.GetSessionEntries(ctx, "s")
	if err != nil {
		t.Fatalf("Failed to get session entries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 entry after replay, got %d", len(got))
	}
	if got[0].BotResponse != "b" {
		t.Fatalf("Expected latest response, got %q", got[0].BotResponse)
	}
}

func TestSessionEntriesOrderedOldestFirst(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()
	entries := []*core.ChatEntry{
		{SessionID: "s", UserMessage: "third", BotResponse: "r", Timestamp: now},
		{SessionID: "s", UserMessage: "first", BotResponse: "r", Timestamp: now.Add(-2 * time.Hour)},
		{SessionID: "s", UserMessage: "second", BotResponse: "r", Timestamp: now.Add(-1 * time.Hour)},
		{SessionID: "other", UserMessage: "noise", BotResponse: "r", Timestamp: now},
	}
	if _, err := repo.AppendEntries(ctx, entries...); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	got, err := repo.GetSessionEntries(ctx, "s")
	if err != nil {
		t.Fatalf("Failed to get session entries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got[i].UserMessage != w {
			t.Fatalf("Position %d: expected %q, got %q", i, w, got[i].UserMessage)
		}
	}
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()
	for i, msg := range []string{"oldest", "middle", "newest"} {
		entry := &core.ChatEntry{
			SessionID:   "s",
			UserMessage: msg,
			BotResponse: "r",
			Timestamp:   now.Add(time.Duration(i) * time.Hour),
		}
		if _, err := repo.AppendEntries(ctx, entry); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	got, err := repo.GetRecentEntries(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get recent entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].UserMessage != "newest" || got[1].UserMessage != "middle" {
		t.Fatalf("Unexpected order: %q, %q", got[0].UserMessage, got[1].UserMessage)
	}
}

func TestDeleteSessionEntries(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()
	entries := []*core.ChatEntry{
		{SessionID: "keep", UserMessage: "a", BotResponse: "r", Timestamp: now},
		{SessionID: "drop", UserMessage: "b", BotResponse: "r", Timestamp: now},
		{SessionID: "drop", UserMessage: "c", BotResponse: "r", Timestamp: now.Add(time.Minute)},
	}
	if _, err := repo.AppendEntries(ctx, entries...); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	n, err := repo.DeleteSessionEntries(ctx, "drop")
	if err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected 2 deleted, got %d", n)
	}

	remaining, err := repo.GetSessionEntries(ctx, "drop")
	if err != nil {
		t.Fatalf("Failed to get session entries: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected no entries, got %d", len(remaining))
	}

	kept, err := repo.GetSessionEntries(ctx, "keep")
	if err != nil {
		t.Fatalf("Failed to get session entries: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(kept))
	}

	recent, err := repo.GetRecentEntries(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to get recent entries: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Deleted entries leaked into the date index: got %d", len(recent))
	}
}

func TestAppendRejectsInvalidEntry(t *testing.T) {
	repo, backend, err := NewMemoryChatLog()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	_, err = repo.AppendEntries(ctx, &core.ChatEntry{UserMessage: "no session", BotResponse: "r", Timestamp: time.Now().UTC()})
	if !errors.Is(err, core.ErrEmptySessionID) {
		t.Fatalf("Expected ErrEmptySessionID, got %v", err)
	}
}
