package search

import "github.com/locatour/tourguide/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, sessionID string)
	AfterNormalize(keywords []string, detectedLocation string)
	Classified(isFollowup, isAlternatives bool)
	EffectiveKeywords(keywords []string)
	AfterResolve(ids map[string]bool)
	AfterMaterialize(records []*core.Record)
	AfterAlternativesFilter(records []*core.Record, exhausted bool)
	AfterRank(matches []*core.ScoredMatch)
	Finish(results []*core.Record, response string)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ string)                           {}
func (n *noopMonitor) AfterNormalize(_ []string, _ string)                {}
func (n *noopMonitor) Classified(_, _ bool)                               {}
func (n *noopMonitor) EffectiveKeywords(_ []string)                       {}
func (n *noopMonitor) AfterResolve(_ map[string]bool)                     {}
func (n *noopMonitor) AfterMaterialize(_ []*core.Record)                  {}
func (n *noopMonitor) AfterAlternativesFilter(_ []*core.Record, _ bool)   {}
func (n *noopMonitor) AfterRank(_ []*core.ScoredMatch)                    {}
func (n *noopMonitor) Finish(_ []*core.Record, _ string)                  {}
