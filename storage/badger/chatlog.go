package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
)

// ChatLogRepository implements storage.ChatLogRepository for BadgerDB.
type ChatLogRepository struct {
	backend *Backend
}

var _ storage.ChatLogRepository = (*ChatLogRepository)(nil)

// NewChatLogRepository creates a new ChatLogRepository.
func NewChatLogRepository(backend *Backend) *ChatLogRepository {
	return &ChatLogRepository{backend: backend}
}

// Close is a no-op; the shared backend owns the database handle.
func (r *ChatLogRepository) Close() error {
	return nil
}

// AppendEntries persists one or more chat entries. Entries without an ID get
// a content-based one, so replaying the same exchange overwrites rather than
// duplicates.
func (r *ChatLogRepository) AppendEntries(ctx context.Context, entries ...*core.ChatEntry) ([]*core.ChatEntry, error) {
	for _, entry := range entries {
		if err := core.ValidateChatEntry(entry); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.Id == 0 {
				entry.Id = core.EntryID(entry.SessionID, entry.UserMessage, entry.Timestamp)
			}
			entry.InsertedAt = time.Now().UTC()

			key := makeChatEntryKey(entry.Id)
			if err := tx.Set(key, storage.MarshalChatEntry(entry)); err != nil {
				return err
			}

			sessionKey := makeChatSessionKey(entry.SessionID, entry.Timestamp, entry.Id)
			if err := tx.Set(sessionKey, storage.MarshalID(entry.Id)); err != nil {
				return err
			}

			dateKey := makeChatDateKey(entry.Timestamp, entry.Id)
			if err := tx.Set(dateKey, storage.MarshalID(entry.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// GetSessionEntries retrieves the entries of one session, oldest first.
func (r *ChatLogRepository) GetSessionEntries(ctx context.Context, sessionID string) ([]*core.ChatEntry, error) {
	if sessionID == "" {
		return nil, core.ErrEmptySessionID
	}

	var results []*core.ChatEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeChatSessionPrefix(sessionID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			var entryID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entryID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			entry, err := r.readChatEntry(tx, makeChatEntryKey(entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentEntries retrieves the N most recent entries across all sessions,
// newest first.
func (r *ChatLogRepository) GetRecentEntries(ctx context.Context, limit int) ([]*core.ChatEntry, error) {
	var results []*core.ChatEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible date key and walk backwards.
		startKey := makePartialChatDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(chatEntryDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			var entryID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entryID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			entry, err := r.readChatEntry(tx, makeChatEntryKey(entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteSessionEntries removes every entry of a session and reports how many
// were deleted.
func (r *ChatLogRepository) DeleteSessionEntries(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, core.ErrEmptySessionID
	}

	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeChatSessionPrefix(sessionID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)

		// Collect first; deleting while iterating invalidates the iterator.
		var sessionKeys [][]byte
		var entryIDs []core.ID
		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			sessionKeys = append(sessionKeys, iter.Item().KeyCopy(nil))
			var entryID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entryID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}
			entryIDs = append(entryIDs, entryID)
		}
		iter.Close()

		for i, entryID := range entryIDs {
			entry, err := r.readChatEntry(tx, makeChatEntryKey(entryID))
			if err != nil {
				return err
			}
			if entry != nil {
				if err := tx.Delete(makeChatDateKey(entry.Timestamp, entry.Id)); err != nil {
					return err
				}
				if err := tx.Delete(makeChatEntryKey(entry.Id)); err != nil {
					return err
				}
				deleted++
			}
			if err := tx.Delete(sessionKeys[i]); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// readChatEntry reads a chat entry from the transaction. Missing keys return
// (nil, nil).
func (r *ChatLogRepository) readChatEntry(tx *badger.Txn, key []byte) (*core.ChatEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.ChatEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = storage.UnmarshalChatEntry(val)
		return unmarshalErr
	})
	return entry, err
}
