package chatlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
	"github.com/panjf2000/ants/v2"
)

// Appender persists chat exchanges asynchronously through a worker pool.
// Callers fire and forget; failed writes are logged, not returned.
type Appender struct {
	repo    storage.ChatLogRepository
	pool    *ants.Pool
	wg      sync.WaitGroup
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Appender.
type Option func(*Appender) error

// WithPoolSize sets the worker pool size for concurrent writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(a *Appender) error {
		if size < 1 {
			size = 1
		}
		if a.pool != nil {
			a.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// WithWriteTimeout bounds how long a single background write may take.
// Default is 5 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(a *Appender) error {
		if d > 0 {
			a.timeout = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Appender) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAppender creates an asynchronous chat-log appender.
func NewAppender(repo storage.ChatLogRepository, opts ...Option) (*Appender, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	a := &Appender{
		repo:    repo,
		pool:    pool,
		timeout: 5 * time.Second,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.Release()
			return nil, optErr
		}
	}

	return a, nil
}

// Append submits an exchange for background persistence. Validation failures
// are reported synchronously; write failures are only logged.
func (a *Appender) Append(sessionID, userMessage, botResponse string, matchedIDs []string, timestamp time.Time) error {
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	entry := &core.ChatEntry{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: botResponse,
		MatchedIDs:  matchedIDs,
		Timestamp:   timestamp,
	}
	if err := core.ValidateChatEntry(entry); err != nil {
		return err
	}

	a.wg.Add(1)
	submitErr := a.pool.Submit(func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if _, err := a.repo.AppendEntries(ctx, entry); err != nil {
			a.logger.Error("error persisting chat entry",
				"session_id", entry.SessionID, "err", err)
		}
	})
	if submitErr != nil {
		a.wg.Done()
		return submitErr
	}
	return nil
}

// Flush blocks until all submitted writes have completed.
func (a *Appender) Flush() {
	a.wg.Wait()
}

// Release drains pending writes and releases the worker pool.
// The appender should not be used after calling Release.
func (a *Appender) Release() {
	a.wg.Wait()
	if a.pool != nil {
		a.pool.Release()
	}
}
