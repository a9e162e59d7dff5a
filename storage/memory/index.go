package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/nlp"
	"github.com/locatour/tourguide/storage"
)

// Index answers keyword and substring lookups over the dataset. All lookup
// structures are computed once at construction; methods never fail.
type Index struct {
	byKeyword map[string][]string
	byType    map[string][]string
	names     []indexedText
	locations []indexedText
}

type indexedText struct {
	text string // stemmed, lowercased
	id   string
}

var _ storage.Index = (*Index)(nil)

// NewIndex builds an index over the given records.
func NewIndex(records []*core.Record) *Index {
	idx := &Index{
		byKeyword: make(map[string][]string),
		byType:    make(map[string][]string),
		names:     make([]indexedText, 0, len(records)),
		locations: make([]indexedText, 0, len(records)),
	}
	for _, r := range records {
		for _, tag := range r.DescriptionTags() {
			for _, token := range nlp.Tokenize(tag) {
				stemmed := nlp.Stem(token)
				idx.byKeyword[stemmed] = appendUnique(idx.byKeyword[stemmed], r.Id)
			}
		}
		if t := r.NormalizedType(); t != "" {
			idx.byType[t] = appendUnique(idx.byType[t], r.Id)
		}
		idx.names = append(idx.names, indexedText{text: nlp.StemPhrase(r.Name), id: r.Id})
		if loc := r.NormalizedLocation(); loc != "" {
			idx.locations = append(idx.locations, indexedText{text: nlp.StemPhrase(loc), id: r.Id})
		}
	}
	for _, ids := range idx.byKeyword {
		sort.Strings(ids)
	}
	for _, ids := range idx.byType {
		sort.Strings(ids)
	}
	return idx
}

// FindByKeyword returns IDs of records whose description tags contain the
// keyword. The lookup is over stemmed tag tokens, so callers pass stemmed
// keywords.
func (idx *Index) FindByKeyword(ctx context.Context, keyword string) ([]string, error) {
	return idx.byKeyword[nlp.Stem(strings.ToLower(strings.TrimSpace(keyword)))], nil
}

// FindByNameSubstring returns IDs of records whose stemmed name contains the
// text.
func (idx *Index) FindByNameSubstring(ctx context.Context, text string) ([]string, error) {
	return findSubstring(idx.names, text), nil
}

// FindByLocation returns IDs of records whose stemmed location contains the
// text.
func (idx *Index) FindByLocation(ctx context.Context, text string) ([]string, error) {
	return findSubstring(idx.locations, text), nil
}

// FindByType returns IDs of records with the exact type value.
func (idx *Index) FindByType(ctx context.Context, itemType string) ([]string, error) {
	return idx.byType[strings.ToLower(strings.TrimSpace(itemType))], nil
}

// FindByNamePrefix returns IDs of records whose stemmed name starts with the
// prefix.
func (idx *Index) FindByNamePrefix(ctx context.Context, prefix string) ([]string, error) {
	needle := nlp.StemPhrase(prefix)
	if needle == "" {
		return nil, nil
	}
	var ids []string
	for _, entry := range idx.names {
		if strings.HasPrefix(entry.text, needle) {
			ids = append(ids, entry.id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func findSubstring(entries []indexedText, text string) []string {
	needle := nlp.StemPhrase(text)
	if needle == "" {
		return nil
	}
	var ids []string
	for _, entry := range entries {
		if strings.Contains(entry.text, needle) {
			ids = append(ids, entry.id)
		}
	}
	sort.Strings(ids)
	return ids
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
