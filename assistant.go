// Copyright 2025 LocaTour
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tourguide

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/locatour/tourguide/chatlog"
	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/dataset"
	"github.com/locatour/tourguide/reply"
	"github.com/locatour/tourguide/routing"
	"github.com/locatour/tourguide/search"
	"github.com/locatour/tourguide/session"
	"github.com/locatour/tourguide/storage"
	badgerstore "github.com/locatour/tourguide/storage/badger"
	"github.com/locatour/tourguide/storage/memory"
)

// DefaultTopN is how many results a chat turn surfaces unless overridden.
const DefaultTopN = 5

// Assistant is the top-level entry point: a conversational tourism guide
// over a fixed dataset, with per-session memory, persistent chat logs and
// route planning.
type Assistant struct {
	records  *memory.RecordStore
	sessions *session.Store
	searcher *search.Searcher
	composer *reply.Composer
	planner  *routing.Planner
	chatRepo storage.ChatLogRepository
	appender *chatlog.Appender
	backend  *badgerstore.Backend
	topN     int
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	records        []core.Record
	dataPath       string
	topN           int
	sessionTimeout time.Duration
	logger         *slog.Logger
}

// WithRecords replaces the embedded dataset.
func WithRecords(records []core.Record) AssistantOption {
	return func(o *assistantOptions) {
		o.records = records
	}
}

// WithDataPath stores chat logs on disk at the given directory.
// Default is an in-memory store.
func WithDataPath(path string) AssistantOption {
	return func(o *assistantOptions) {
		o.dataPath = path
	}
}

// WithTopN sets how many results a chat turn surfaces.
func WithTopN(n int) AssistantOption {
	return func(o *assistantOptions) {
		if n > 0 {
			o.topN = n
		}
	}
}

// WithSessionTimeout overrides the idle timeout after which a session's
// memory is discarded.
func WithSessionTimeout(d time.Duration) AssistantOption {
	return func(o *assistantOptions) {
		o.sessionTimeout = d
	}
}

// WithAssistantLogger sets a custom logger. Default is slog.Default().
func WithAssistantLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant wires the full pipeline: dataset, index, session store,
// searcher, response composer, chat log and route planner.
func NewAssistant(opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		topN:           DefaultTopN,
		sessionTimeout: session.DefaultTimeout,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	records := options.records
	if records == nil {
		var err error
		records, err = dataset.Embedded()
		if err != nil {
			return nil, err
		}
	}

	store, err := memory.NewRecordStore(records)
	if err != nil {
		return nil, err
	}

	all, err := store.ScanAll(context.Background())
	if err != nil {
		return nil, err
	}
	index := memory.NewIndex(all)

	resolver, err := search.NewResolver(store, index, search.WithResolverLogger(options.logger))
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(
		session.WithTimeout(options.sessionTimeout),
		session.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}

	composer := reply.NewComposer()

	searcher, err := search.NewSearcher(resolver, sessions,
		search.WithResponder(composer),
		search.WithLogger(options.logger),
	)
	if err != nil {
		sessions.Close()
		return nil, err
	}

	backend, err := badgerstore.OpenBackend(options.dataPath, options.dataPath == "")
	if err != nil {
		sessions.Close()
		return nil, err
	}
	chatRepo := badgerstore.NewChatLogRepository(backend)

	appender, err := chatlog.NewAppender(chatRepo, chatlog.WithLogger(options.logger))
	if err != nil {
		chatRepo.Close()
		backend.Close()
		sessions.Close()
		return nil, err
	}

	planner, err := routing.NewPlanner(store, routing.WithPlannerLogger(options.logger))
	if err != nil {
		appender.Release()
		chatRepo.Close()
		backend.Close()
		sessions.Close()
		return nil, err
	}

	return &Assistant{
		records:  store,
		sessions: sessions,
		searcher: searcher,
		composer: composer,
		planner:  planner,
		chatRepo: chatRepo,
		appender: appender,
		backend:  backend,
		topN:     options.topN,
		logger:   options.logger,
	}, nil
}

// ChatResult is the outcome of one conversational turn.
type ChatResult struct {
	SessionID      string         `json:"session_id"`
	Response       string         `json:"response"`
	Records        []*core.Record `json:"records,omitempty"`
	Keywords       []string       `json:"keywords,omitempty"`
	Location       string         `json:"location,omitempty"`
	IsFollowup     bool           `json:"is_followup"`
	IsAlternatives bool           `json:"is_alternatives"`
	Casual         bool           `json:"casual"`
	Reset          bool           `json:"reset"`
}

// Chat handles one user message. A blank sessionID starts a new session.
// Small talk and reset commands are answered without running a search; every
// exchange is logged in the background.
func (a *Assistant) Chat(ctx context.Context, sessionID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, core.ErrEmptyQuery
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if reply.IsResetCommand(message) {
		a.sessions.Reset(sessionID)
		result := &ChatResult{
			SessionID: sessionID,
			Response:  a.composer.ResetResponse(),
			Reset:     true,
		}
		a.logExchange(sessionID, message, result.Response, nil)
		return result, nil
	}

	if category := reply.DetectCasual(message); category != "" {
		result := &ChatResult{
			SessionID: sessionID,
			Response:  a.composer.CasualResponse(category),
			Casual:    true,
		}
		a.logExchange(sessionID, message, result.Response, nil)
		return result, nil
	}

	searchResult, _, err := a.searcher.Search(ctx, message, sessionID, a.topN)
	if err != nil {
		return nil, err
	}

	matchedIDs := make([]string, 0, len(searchResult.Records))
	for _, r := range searchResult.Records {
		matchedIDs = append(matchedIDs, r.Id)
	}
	a.logExchange(sessionID, message, searchResult.Response, matchedIDs)

	return &ChatResult{
		SessionID:      sessionID,
		Response:       searchResult.Response,
		Records:        searchResult.Records,
		Keywords:       searchResult.Keywords,
		Location:       searchResult.DetectedLocation,
		IsFollowup:     searchResult.IsFollowup,
		IsAlternatives: searchResult.IsAlternatives,
	}, nil
}

// ResetSession clears a session's conversational memory. Persisted chat
// logs are kept.
func (a *Assistant) ResetSession(sessionID string) {
	a.sessions.Reset(sessionID)
}

// SessionSummary returns a digest of what the assistant remembers about a
// session.
func (a *Assistant) SessionSummary(sessionID string) session.Summary {
	return a.sessions.GetOrCreate(sessionID).Summarize()
}

// History returns a session's persisted exchanges, oldest first.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]*core.ChatEntry, error) {
	a.appender.Flush()
	return a.chatRepo.GetSessionEntries(ctx, sessionID)
}

// Route plans a trip from the traveler's position to a dataset record.
func (a *Assistant) Route(ctx context.Context, fromLat, fromLon float64, destinationID string) (*routing.Route, error) {
	return a.planner.CalculateRoute(ctx, fromLat, fromLon, destinationID)
}

// Nearby lists dataset records within a radius of the traveler, nearest
// first. An empty itemType matches everything.
func (a *Assistant) Nearby(ctx context.Context, lat, lon, radiusKM float64, limit int, itemType string) ([]routing.NearbyPlace, error) {
	return a.planner.FindNearby(ctx, lat, lon, radiusKM, limit, itemType)
}

// Records exposes the read-only record store.
func (a *Assistant) Records() storage.RecordStore {
	return a.records
}

// Close drains pending chat-log writes and releases all resources.
func (a *Assistant) Close() error {
	a.appender.Release()
	a.sessions.Close()
	if err := a.chatRepo.Close(); err != nil {
		a.logger.Error("error closing chat-log repository", "err", err)
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) logExchange(sessionID, message, response string, matchedIDs []string) {
	if err := a.appender.Append(sessionID, message, response, matchedIDs, time.Now().UTC()); err != nil {
		a.logger.Error("error queueing chat entry", "session_id", sessionID, "err", err)
	}
}
