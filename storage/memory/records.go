package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
)

// RecordStore holds the tourism dataset in memory. The dataset is immutable
// after construction, so reads need no locking.
type RecordStore struct {
	byID  map[string]*core.Record
	order []string
}

var _ storage.RecordStore = (*RecordStore)(nil)

// NewRecordStore builds a store from the given records. Every record is
// validated; duplicate IDs are an error.
func NewRecordStore(records []core.Record) (*RecordStore, error) {
	s := &RecordStore{
		byID:  make(map[string]*core.Record, len(records)),
		order: make([]string, 0, len(records)),
	}
	for i := range records {
		r := records[i]
		if err := core.ValidateRecord(&r); err != nil {
			return nil, fmt.Errorf("record %q: %w", r.Id, err)
		}
		if _, exists := s.byID[r.Id]; exists {
			return nil, fmt.Errorf("%w: duplicate record id %q", core.ErrInvalidRecord, r.Id)
		}
		s.byID[r.Id] = &r
		s.order = append(s.order, r.Id)
	}
	sort.Strings(s.order)
	return s, nil
}

// GetByID retrieves a single record by its stable string ID.
func (s *RecordStore) GetByID(ctx context.Context, id string) (*core.Record, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: record %q", storage.ErrNotFound, id)
	}
	return r, nil
}

// ScanAll returns every record, ordered by ID for reproducible iteration.
func (s *RecordStore) ScanAll(ctx context.Context) ([]*core.Record, error) {
	out := make([]*core.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Len reports how many records the store holds.
func (s *RecordStore) Len() int {
	return len(s.byID)
}
