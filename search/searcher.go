package search

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/nlp"
	"github.com/locatour/tourguide/session"
)

const (
	minTopN = 1
	maxTopN = 10
)

// Responder turns ranked results into a reply. It depends only on the
// pipeline's output; the orchestrator records the reply into the session so
// follow-up turns can see it.
type Responder interface {
	Compose(results []*core.Record, isFollowup, alternativesExhausted bool) string
}

// Result is the outcome of one contextual search call.
type Result struct {
	Records               []*core.Record
	Response              string
	Keywords              []string // current-query keywords, non-merged
	DetectedLocation      string
	IsFollowup            bool
	IsAlternatives        bool
	AlternativesExhausted bool
}

// Searcher is the top-level entry point of the query pipeline.
type Searcher struct {
	resolver  *Resolver
	sessions  *session.Store
	responder Responder // optional

	randMu sync.Mutex
	rand   *rand.Rand

	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithResponder sets the reply composer recorded into each turn.
// Without one, turns are recorded with an empty response text.
func WithResponder(responder Responder) Option {
	return func(s *Searcher) error {
		s.responder = responder
		return nil
	}
}

// WithRandSource fixes the randomness used to shuffle alternative candidates.
// Tests use a seeded source to make the candidate order deterministic.
func WithRandSource(src rand.Source) Option {
	return func(s *Searcher) error {
		if src != nil {
			s.rand = rand.New(src)
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(resolver *Resolver, sessions *session.Store, opts ...Option) (*Searcher, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if sessions == nil {
		return nil, ErrSessionStoreRequired
	}

	s := &Searcher{
		resolver: resolver,
		sessions: sessions,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the full pipeline for one user query and returns the ranked
// records together with the session context. topN is clamped to 1..10.
// An empty query is the only caller-visible input error; it is rejected
// before any session state is touched.
func (s *Searcher) Search(ctx context.Context, query, sessionID string, topN int) (*Result, *session.Context, error) {
	return s.SearchWithMonitor(ctx, query, sessionID, topN, nil)
}

// SearchWithMonitor runs Search with stage callbacks for instrumentation.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query, sessionID string, topN int, monitor SearchMonitor) (*Result, *session.Context, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, nil, core.ErrEmptyQuery
	}
	if topN < minTopN {
		topN = minTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	monitor.Start(query, sessionID)

	// 1. Normalize.
	keywords, detectedLocation := nlp.Normalize(query)
	monitor.AfterNormalize(keywords, detectedLocation)

	// 2. Session context.
	sessCtx := s.sessions.GetOrCreate(sessionID)
	snap := sessCtx.SnapshotState()

	// 3. Classify.
	isAlt := session.IsAlternativesRequest(query)
	isFollowup := isAlt || sessCtx.IsFollowup(query)
	monitor.Classified(isFollowup, isAlt)

	// 4. Merge context keywords on follow-ups: current-query keywords first,
	// then keywords from the recent turns, first occurrence wins.
	effective := keywords
	if isFollowup && len(snap.ContextKeywords) > 0 {
		effective = mergeKeywords(keywords, snap.ContextKeywords)
	}
	monitor.EffectiveKeywords(effective)

	// 5. Resolve and materialize candidates.
	ids := s.resolver.Resolve(ctx, effective)
	monitor.AfterResolve(ids)
	candidates := s.resolver.Materialize(ctx, ids)
	monitor.AfterMaterialize(candidates)

	// 6. Alternatives: constrain to the prior topic, drop what was already
	// shown, and shuffle the survivors.
	exhausted := false
	if isAlt {
		candidates, exhausted = s.filterAlternatives(candidates, snap)
		if !exhausted {
			s.shuffle(candidates)
		}
		monitor.AfterAlternativesFilter(candidates, exhausted)
	}

	// 7. Score and rank; the location, when detected, acts as a hard filter.
	var results []*core.Record
	if !exhausted {
		matches := Rank(candidates, effective, detectedLocation)
		monitor.AfterRank(matches)

		// 8. Truncate.
		if len(matches) > topN {
			matches = matches[:topN]
		}
		results = make([]*core.Record, 0, len(matches))
		for _, m := range matches {
			results = append(results, m.Record)
		}
	}

	if exhausted {
		sessCtx.MarkAlternativesExhausted()
	}

	response := ""
	if s.responder != nil {
		response = s.responder.Compose(results, isFollowup, exhausted)
	}

	// 9. Record the turn with the current (non-merged) keywords.
	sessCtx.RecordTurn(query, keywords, response, results)

	monitor.Finish(results, response)

	return &Result{
		Records:               results,
		Response:              response,
		Keywords:              keywords,
		DetectedLocation:      detectedLocation,
		IsFollowup:            isFollowup,
		IsAlternatives:        isAlt,
		AlternativesExhausted: exhausted,
	}, sessCtx, nil
}

// filterAlternatives applies the two-tier exclusion: prefer candidates not in
// the last turn's items, then fall back to excluding everything ever shown.
// Before excluding, candidates are restricted to those sharing location or
// type with the first of the last turn's items, when those fields are
// available; a restriction that empties the set is ignored.
func (s *Searcher) filterAlternatives(candidates []*core.Record, snap session.Snapshot) ([]*core.Record, bool) {
	if len(snap.LastItems) > 0 {
		first := snap.LastItems[0]
		loc := first.NormalizedLocation()
		typ := first.NormalizedType()
		if loc != "" || typ != "" {
			related := make([]*core.Record, 0, len(candidates))
			for _, c := range candidates {
				if (loc != "" && c.NormalizedLocation() == loc) ||
					(typ != "" && c.NormalizedType() == typ) {
					related = append(related, c)
				}
			}
			if len(related) > 0 {
				candidates = related
			}
		}
	}

	lastShown := make(map[string]bool, len(snap.LastItems))
	for _, item := range snap.LastItems {
		if item != nil {
			lastShown[item.Id] = true
		}
	}

	novel := make([]*core.Record, 0, len(candidates))
	for _, c := range candidates {
		if !lastShown[c.Id] {
			novel = append(novel, c)
		}
	}

	if len(novel) == 0 {
		// Second tier: exclude everything mentioned this session.
		for _, c := range candidates {
			if !snap.MentionedIDs[c.Id] {
				novel = append(novel, c)
			}
		}
	}

	if len(novel) == 0 {
		return nil, true
	}
	return novel, false
}

// shuffle randomizes candidate order. Ranking restores determinism by score;
// only equal-score ties keep the shuffled order.
func (s *Searcher) shuffle(records []*core.Record) {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	s.rand.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// mergeKeywords appends context keywords after the current-query keywords,
// de-duplicating with first-wins semantics.
func mergeKeywords(current, contextual []string) []string {
	seen := make(map[string]bool, len(current)+len(contextual))
	merged := make([]string, 0, len(current)+len(contextual))
	for _, kw := range current {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			merged = append(merged, kw)
		}
	}
	for _, kw := range contextual {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			merged = append(merged, kw)
		}
	}
	return merged
}

// stableSortByScore orders matches by score descending, keeping the incoming
// order for equal scores.
func stableSortByScore(matches []*core.ScoredMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
