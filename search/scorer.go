package search

import (
	"fmt"
	"strings"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/nlp"
)

// Scoring weights. A single keyword may score against several fields; the
// description-keywords and full-description rules are mutually exclusive per
// keyword.
const (
	nameExactScore    = 10
	namePartialScore  = 5
	locationScore     = 3
	descTagExactScore = 3
	descTagScore      = 2
	fullDescScore     = 1
	multiMatchStep    = 5
	locationBonus     = 8
)

// Score computes the relevance of a record for a keyword set. locationFilter,
// when non-empty, is a hard filter: a record whose stemmed location does not
// contain it scores exactly 0 with an empty trace, regardless of other
// matches. Records with score 0 are excluded from ranked output entirely.
//
// The trace lists "field:keyword" tags in discovery order, plus bonus entries;
// it is diagnostic only but must be reproducible.
func Score(record *core.Record, keywords []string, locationFilter string) (float64, []string) {
	if record == nil {
		return 0, nil
	}

	nameStemmed := nlp.StemPhrase(record.Name)
	locationStemmed := nlp.StemPhrase(record.Location)
	descStemmed := nlp.StemPhrase(record.DescriptionKeywords)
	fullDescStemmed := nlp.StemPhrase(record.FullDescription)

	if locationFilter != "" && !strings.Contains(locationStemmed, nlp.StemPhrase(locationFilter)) {
		return 0, nil
	}

	var score float64
	var trace []string
	matched := make(map[string]bool)

	tags := record.DescriptionTags()

	for _, keyword := range keywords {
		kw := nlp.Stem(keyword)
		if kw == "" {
			continue
		}

		if strings.Contains(nameStemmed, kw) {
			if kw == nameStemmed {
				score += nameExactScore
			} else {
				score += namePartialScore
			}
			trace = append(trace, "name:"+keyword)
			matched[kw] = true
		}

		if strings.Contains(locationStemmed, kw) {
			score += locationScore
			trace = append(trace, "location:"+keyword)
			matched[kw] = true
		}

		if strings.Contains(descStemmed, kw) {
			if tagMatchesExactly(tags, keyword, kw) {
				score += descTagExactScore
			} else {
				score += descTagScore
			}
			trace = append(trace, "desc:"+keyword)
			matched[kw] = true
		} else if strings.Contains(fullDescStemmed, kw) {
			score += fullDescScore
			trace = append(trace, "full_desc:"+keyword)
			matched[kw] = true
		}
	}

	if len(matched) > 1 {
		bonus := multiMatchStep * (len(matched) - 1)
		score += float64(bonus)
		trace = append(trace, fmt.Sprintf("multi_match_bonus:%d", bonus))
	}

	if locationFilter != "" && strings.Contains(strings.ToLower(record.Location), strings.ToLower(locationFilter)) {
		score += locationBonus
		trace = append(trace, "location_filter_match:"+locationFilter)
	}

	return score, trace
}

// tagMatchesExactly reports whether the keyword equals one of the tag entries
// either raw or post-stem.
func tagMatchesExactly(tags []string, raw, stemmed string) bool {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, tag := range tags {
		if tag == lowered || nlp.StemPhrase(tag) == stemmed {
			return true
		}
	}
	return false
}

// Rank scores every record against the keywords, drops zero scores, and
// returns matches sorted by score descending. The sort is stable: equal
// scores keep the incoming candidate order.
func Rank(records []*core.Record, keywords []string, locationFilter string) []*core.ScoredMatch {
	matches := make([]*core.ScoredMatch, 0, len(records))
	for _, record := range records {
		score, trace := Score(record, keywords, locationFilter)
		if score > 0 {
			matches = append(matches, &core.ScoredMatch{Record: record, Score: score, Trace: trace})
		}
	}
	stableSortByScore(matches)
	return matches
}
