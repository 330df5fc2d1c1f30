package store

import (
	"cmp"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

// memoryStore is an in-process record store with the same query semantics as
// the Firestore one. Used for local runs and tests.
type memoryStore struct {
	mu       sync.RWMutex
	rows     map[models.Kind][]models.Row
	clockNow func() time.Time
	newID    func() string
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{
		rows:     make(map[models.Kind][]models.Row),
		clockNow: time.Now,
		newID:    uuid.NewString,
	}
}

func (s *memoryStore) Query(_ context.Context, kind models.Kind, q dto.RecordQuery) ([]models.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Row
	for _, row := range s.rows[kind] {
		if matchesAll(row, q.Filters) {
			out = append(out, row.Clone())
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c, ok := compareValues(out[i][q.OrderBy], out[j][q.OrderBy])
			if !ok {
				return false
			}
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memoryStore) Insert(_ context.Context, kind models.Kind, row models.Row) (models.Row, error) {
	data := withDefaults(kind, row, s.clockNow())
	data[models.FieldID] = s.newID()

	s.mu.Lock()
	s.rows[kind] = append(s.rows[kind], data)
	s.mu.Unlock()

	return data.Clone(), nil
}

func (s *memoryStore) Delete(_ context.Context, kind models.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.rows[kind]
	for i, row := range rows {
		if row.ID() == id {
			s.rows[kind] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError(string(kind) + " entry not found")
}

func matchesAll(row models.Row, filters []dto.Filter) bool {
	for _, f := range filters {
		c, ok := compareValues(row[f.Field], f.Value)
		if !ok {
			return false
		}
		switch f.Op {
		case dto.OpEq:
			if c != 0 {
				return false
			}
		case dto.OpGte:
			if c < 0 {
				return false
			}
		case dto.OpLte:
			if c > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues orders two stored values. ok is false when the values are of
// kinds that cannot be compared, which never matches a filter.
func compareValues(a, b any) (int, bool) {
	if at, ok := a.(time.Time); ok {
		bt, ok := asTime(b)
		if !ok {
			return 0, false
		}
		return at.Compare(bt), true
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
		if bt, ok := b.(time.Time); ok {
			at := models.TimeValue(as)
			if at.IsZero() {
				return 0, false
			}
			return at.Compare(bt), true
		}
		return 0, false
	}
	if af, ok := asNumber(a); ok {
		if bf, ok := asNumber(b); ok {
			return cmp.Compare(af, bf), true
		}
		return 0, false
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok && ab == bb {
			return 0, true
		}
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		ts := models.TimeValue(t)
		return ts, !ts.IsZero()
	}
	return time.Time{}, false
}

func asNumber(v any) (float64, bool) {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return models.AmountValue(v), true
	}
	return 0, false
}
