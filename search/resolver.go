package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/nlp"
	"github.com/locatour/tourguide/storage"
)

// Resolver obtains candidate record IDs for a keyword set: index lookups
// first, full linear scan as fallback when the index yields nothing.
type Resolver struct {
	store  storage.RecordStore
	index  storage.Index // optional; nil forces the scan path
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver) error

// WithResolverLogger sets a custom logger.
// Default is slog.Default().
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a resolver. The index may be nil; its presence is an
// optimization, not a behavioral requirement.
func NewResolver(store storage.RecordStore, index storage.Index, opts ...ResolverOption) (*Resolver, error) {
	if store == nil {
		return nil, ErrRecordStoreRequired
	}

	r := &Resolver{
		store:  store,
		index:  index,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Resolve returns the set of candidate record IDs for the keywords. An index
// failure for an individual keyword is logged and skipped; only total
// emptiness triggers the scan fallback. Record-store failures likewise
// contribute nothing rather than aborting the call.
func (r *Resolver) Resolve(ctx context.Context, keywords []string) map[string]bool {
	ids := make(map[string]bool)

	if r.index != nil {
		for _, kw := range keywords {
			if kw == "" {
				continue
			}

			if found, err := r.index.FindByKeyword(ctx, kw); err != nil {
				r.logger.Warn("index keyword lookup failed", "keyword", kw, "err", err)
			} else {
				for _, id := range found {
					ids[id] = true
				}
			}

			if found, err := r.index.FindByNameSubstring(ctx, kw); err != nil {
				r.logger.Warn("index name lookup failed", "keyword", kw, "err", err)
			} else {
				for _, id := range found {
					ids[id] = true
				}
			}
		}
	}

	if len(ids) == 0 && len(keywords) > 0 {
		r.scanFallback(ctx, keywords, ids)
	}

	return ids
}

// scanFallback tests every record's concatenated searchable text (stemmed)
// for a substring match on any stemmed keyword. The first hit wins per
// record; a record is included at most once.
func (r *Resolver) scanFallback(ctx context.Context, keywords []string, ids map[string]bool) {
	records, err := r.store.ScanAll(ctx)
	if err != nil {
		r.logger.Warn("full scan failed", "err", err)
		return
	}

	for _, record := range records {
		if record == nil || record.Id == "" {
			continue
		}
		combined := nlp.StemPhrase(record.SearchableText())
		for _, kw := range keywords {
			if kw != "" && strings.Contains(combined, nlp.Stem(kw)) {
				ids[record.Id] = true
				break
			}
		}
	}
}

// Materialize fetches full records for a candidate ID set, dropping any ID
// that fails to resolve. Missing records are a data-consistency tolerance,
// not an error. IDs are visited in sorted order so the candidate sequence,
// and therefore equal-score tie-breaking downstream, is reproducible.
func (r *Resolver) Materialize(ctx context.Context, ids map[string]bool) []*core.Record {
	ordered := make([]string, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	records := make([]*core.Record, 0, len(ordered))
	for _, id := range ordered {
		record, err := r.store.GetByID(ctx, id)
		if err != nil {
			r.logger.Debug("dropping unresolvable candidate", "id", id, "err", err)
			continue
		}
		records = append(records, record)
	}
	return records
}
