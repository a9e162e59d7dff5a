package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/session"
)

// staticResponder records what it was asked to compose.
type staticResponder struct {
	lastResults   []*core.Record
	lastFollowup  bool
	lastExhausted bool
}

func (r *staticResponder) Compose(results []*core.Record, isFollowup, alternativesExhausted bool) string {
	r.lastResults = results
	r.lastFollowup = isFollowup
	r.lastExhausted = alternativesExhausted
	return "composed"
}

func testSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	store, index := resolverFixture(t)
	resolver, err := NewResolver(store, index)
	require.NoError(t, err)
	sessions, err := session.NewStore()
	require.NoError(t, err)

	opts = append([]Option{WithRandSource(rand.NewSource(1))}, opts...)
	searcher, err := NewSearcher(resolver, sessions, opts...)
	require.NoError(t, err)
	return searcher
}

func TestSearcherRequiresCollaborators(t *testing.T) {
	store, index := resolverFixture(t)
	resolver, err := NewResolver(store, index)
	require.NoError(t, err)
	sessions, err := session.NewStore()
	require.NoError(t, err)

	_, err = NewSearcher(nil, sessions)
	assert.ErrorIs(t, err, ErrResolverRequired)
	_, err = NewSearcher(resolver, nil)
	assert.ErrorIs(t, err, ErrSessionStoreRequired)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	searcher := testSearcher(t)

	_, _, err := searcher.Search(context.Background(), "   ", "s", 5)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	// The rejected call must not have created session state.
	result, sessCtx, err := searcher.Search(context.Background(), "beaches", "s", 5)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, sessCtx.SnapshotState().TurnCount)
}

func TestSearchFreshQuery(t *testing.T) {
	searcher := testSearcher(t)

	result, _, err := searcher.Search(context.Background(), "beaches in Pagudpud", "s", 5)
	require.NoError(t, err)

	assert.Equal(t, "pagudpud", result.DetectedLocation)
	assert.False(t, result.IsFollowup)
	assert.False(t, result.IsAlternatives)
	require.Len(t, result.Records, 2)
	// the named beach outscores the lagoon
	assert.Equal(t, "TS01", result.Records[0].Id)
	assert.Equal(t, "TS02", result.Records[1].Id)
	assert.Contains(t, result.Keywords, "beach")
}

func TestSearchLocationIsHardFilter(t *testing.T) {
	searcher := testSearcher(t)

	// The church matches the keyword but sits in Paoay, not Pagudpud.
	result, _, err := searcher.Search(context.Background(), "churches in Pagudpud", "s", 5)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestSearchTopNClamp(t *testing.T) {
	searcher := testSearcher(t)

	result, _, err := searcher.Search(context.Background(), "heritage beaches and empanada", "s", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Records), 1)
}

func TestSearchFollowupMergesContext(t *testing.T) {
	searcher := testSearcher(t)
	ctx := context.Background()

	first, _, err := searcher.Search(ctx, "beaches in Pagudpud", "s", 5)
	require.NoError(t, err)
	require.NotEmpty(t, first.Records)

	// A short pronoun query continues the topic; the context keywords keep
	// resolving the same beach.
	second, _, err := searcher.Search(ctx, "when should I visit it", "s", 5)
	require.NoError(t, err)
	assert.True(t, second.IsFollowup)
	assert.False(t, second.IsAlternatives)
	require.NotEmpty(t, second.Records)
	assert.Equal(t, "TS01", second.Records[0].Id)
}

func TestSearchAlternativesExcludeShown(t *testing.T) {
	searcher := testSearcher(t)
	ctx := context.Background()

	first, _, err := searcher.Search(ctx, "famous baroque church", "s", 5)
	require.NoError(t, err)
	require.Len(t, first.Records, 1)
	require.Equal(t, "TS03", first.Records[0].Id)

	second, sessCtx, err := searcher.Search(ctx, "something else please", "s", 5)
	require.NoError(t, err)
	assert.True(t, second.IsAlternatives)
	assert.True(t, second.IsFollowup)
	assert.True(t, second.AlternativesExhausted,
		"the only church in the dataset was already shown")
	assert.Empty(t, second.Records)
	assert.True(t, sessCtx.AlternativesExhausted())
}

func TestSearchAlternativesOfferNovelCandidates(t *testing.T) {
	searcher := testSearcher(t)
	ctx := context.Background()

	// topN=1 shows only the strongest beach; an alternatives request must
	// surface a different record of the same topic.
	first, _, err := searcher.Search(ctx, "swimming spots", "s", 1)
	require.NoError(t, err)
	require.Len(t, first.Records, 1)
	shown := first.Records[0].Id

	second, _, err := searcher.Search(ctx, "another option", "s", 5)
	require.NoError(t, err)
	assert.True(t, second.IsAlternatives)
	assert.False(t, second.AlternativesExhausted)
	for _, rec := range second.Records {
		assert.NotEqual(t, shown, rec.Id)
	}
}

func TestSearchRecordsTurnWithResponse(t *testing.T) {
	responder := &staticResponder{}
	searcher := testSearcher(t, WithResponder(responder))

	result, sessCtx, err := searcher.Search(context.Background(), "beaches in Pagudpud", "s", 5)
	require.NoError(t, err)
	assert.Equal(t, "composed", result.Response)
	assert.False(t, responder.lastFollowup)
	assert.Equal(t, result.Records, responder.lastResults)

	snap := sessCtx.SnapshotState()
	assert.Equal(t, 1, snap.TurnCount)
	assert.True(t, snap.ExpectingFollowup)
	assert.True(t, snap.MentionedIDs["TS01"])
}

func TestMergeKeywords(t *testing.T) {
	merged := mergeKeywords([]string{"beach", "sand"}, []string{"sand", "pagudpud", ""})
	assert.Equal(t, []string{"beach", "sand", "pagudpud"}, merged)
}
