package chatlog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
)

// recordingRepo captures appended entries for inspection.
type recordingRepo struct {
	mu      sync.Mutex
	entries []*core.ChatEntry
	fail    error
}

var _ storage.ChatLogRepository = (*recordingRepo)(nil)

func (r *recordingRepo) AppendEntries(ctx context.Context, entries ...*core.ChatEntry) ([]*core.ChatEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	r.entries = append(r.entries, entries...)
	return entries, nil
}

func (r *recordingRepo) GetSessionEntries(ctx context.Context, sessionID string) ([]*core.ChatEntry, error) {
	return nil, nil
}

func (r *recordingRepo) GetRecentEntries(ctx context.Context, limit int) ([]*core.ChatEntry, error) {
	return nil, nil
}

func (r *recordingRepo) DeleteSessionEntries(ctx context.Context, sessionID string) (int, error) {
	return 0, nil
}

func (r *recordingRepo) Close() error { return nil }

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAppenderPersistsInBackground(t *testing.T) {
	repo := &recordingRepo{}
	appender, err := NewAppender(repo, WithPoolSize(2))
	require.NoError(t, err)
	defer appender.Release()

	for i := 0; i < 5; i++ {
		err := appender.Append("sess-1", "beaches in Pagudpud", "Saud Beach is in Pagudpud.", []string{"TS01"}, time.Now().UTC())
		require.NoError(t, err)
	}

	appender.Flush()
	assert.Equal(t, 5, repo.count())
}

func TestAppenderValidatesSynchronously(t *testing.T) {
	repo := &recordingRepo{}
	appender, err := NewAppender(repo)
	require.NoError(t, err)
	defer appender.Release()

	err = appender.Append("", "message", "response", nil, time.Now().UTC())
	assert.ErrorIs(t, err, core.ErrEmptySessionID)
	appender.Flush()
	assert.Zero(t, repo.count())
}

func TestAppenderSwallowsWriteFailures(t *testing.T) {
	repo := &recordingRepo{fail: context.DeadlineExceeded}
	appender, err := NewAppender(repo)
	require.NoError(t, err)
	defer appender.Release()

	// A failing backend must not surface to the caller.
	err = appender.Append("sess-1", "message", "response", nil, time.Now().UTC())
	assert.NoError(t, err)
	appender.Flush()
}

func TestNewAppenderRequiresRepository(t *testing.T) {
	_, err := NewAppender(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}
