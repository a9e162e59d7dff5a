package session

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimeout is how long a session may stay idle before it is reset
	// in place on next access.
	DefaultTimeout = 30 * time.Minute

	// DefaultMaxHistory bounds the per-session turn ring.
	DefaultMaxHistory = 10
)

// Clock supplies timestamps. Injectable for deterministic testing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Store owns every Context, keyed by session ID. Contexts are created lazily
// and reset transparently after the idle timeout.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Context

	timeout    time.Duration
	maxHistory int
	clock      Clock
	logger     *slog.Logger

	sweepStop chan struct{}
	sweepDone chan struct{}
}

// Option configures a Store.
type Option func(*Store) error

// WithTimeout sets the idle duration after which a session is reset.
// Default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) error {
		if d > 0 {
			s.timeout = d
		}
		return nil
	}
}

// WithMaxHistory sets the turn-ring capacity. Default is DefaultMaxHistory.
func WithMaxHistory(n int) Option {
	return func(s *Store) error {
		if n > 0 {
			s.maxHistory = n
		}
		return nil
	}
}

// WithClock sets a custom clock. Default is the system clock.
func WithClock(clock Clock) Option {
	return func(s *Store) error {
		if clock != nil {
			s.clock = clock
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSweepInterval starts a background janitor that evicts fully idle
// sessions every interval. Correctness never depends on the sweep; it only
// bounds memory. Stop the janitor with Close.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Store) error {
		if interval <= 0 {
			return nil
		}
		s.sweepStop = make(chan struct{})
		s.sweepDone = make(chan struct{})
		go s.sweepLoop(interval)
		return nil
	}
}

// NewStore creates a session store.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		sessions:   make(map[string]*Context),
		timeout:    DefaultTimeout,
		maxHistory: DefaultMaxHistory,
		clock:      systemClock{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GetOrCreate returns the context for a session, creating it on first
// reference. A context idle longer than the timeout is reset in place before
// being returned; the reset is transparent to the caller.
func (s *Store) GetOrCreate(sessionID string) *Context {
	s.mu.RLock()
	ctx, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		if ctx, ok = s.sessions[sessionID]; !ok {
			ctx = newContext(sessionID, s.maxHistory, s.clock)
			s.sessions[sessionID] = ctx
			s.logger.Debug("created session context", "sessionID", sessionID)
		}
		s.mu.Unlock()
		return ctx
	}

	if ctx.idleFor(s.clock.Now()) > s.timeout {
		s.logger.Info("session idle past timeout, resetting", "sessionID", sessionID)
		ctx.reset()
	}
	return ctx
}

// Reset clears a session's history and derived state without deleting it.
// Unknown session IDs are a no-op.
func (s *Store) Reset(sessionID string) {
	s.mu.RLock()
	ctx, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		ctx.reset()
		s.logger.Debug("session reset", "sessionID", sessionID)
	}
}

// Delete removes a session completely.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup evicts sessions idle longer than the timeout and reports how many
// were removed.
func (s *Store) Cleanup() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, ctx := range s.sessions {
		if ctx.idleFor(now) > s.timeout {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("evicted idle sessions", "count", removed)
	}
	return removed
}

// Close stops the background janitor, if one was started.
func (s *Store) Close() {
	if s.sweepStop != nil {
		close(s.sweepStop)
		<-s.sweepDone
		s.sweepStop = nil
	}
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer close(s.sweepDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.sweepStop:
			return
		}
	}
}

// Phrases that demand results distinct from what was already shown. Distinct
// from follow-up detection: alternatives imply exclusion of prior results,
// follow-up only implies context carry-over.
var alternativesPhrases = []string{
	"another", "different", "alternative", "else", "other",
	"more options", "something else", "besides", "instead",
}

// IsAlternativesRequest reports whether the text asks for options other than
// those already shown.
func IsAlternativesRequest(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range alternativesPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
