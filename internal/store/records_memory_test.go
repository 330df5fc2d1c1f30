package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

func newTestMemoryStore(now time.Time) *memoryStore {
	s := NewMemoryStore()
	s.clockNow = func() time.Time { return now }
	n := 0
	s.newID = func() string {
		n++
		return "id-" + string(rune('a'+n-1))
	}
	return s
}

func mustInsert(t *testing.T, s Records, kind models.Kind, row models.Row) models.Row {
	t.Helper()
	out, err := s.Insert(context.Background(), kind, row)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return out
}

func TestMemoryInsertAppliesDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestMemoryStore(now)

	exp := mustInsert(t, s, models.KindExpenses, models.Row{
		models.FieldID:     "caller-chosen",
		models.FieldAmount: 10.0,
	})
	if exp.ID() != "id-a" {
		t.Fatalf("store should assign the id, got %q", exp.ID())
	}
	if exp[models.FieldCategory] != "misc" || exp[models.FieldPaymentMode] != "cash" {
		t.Fatalf("expense defaults missing: %v", exp)
	}
	if !models.TimeValue(exp[models.FieldDate]).Equal(now) {
		t.Fatalf("expected default date, got %v", exp[models.FieldDate])
	}

	tx := mustInsert(t, s, models.KindTransactions, models.Row{models.FieldPaymentMode: "online"})
	if tx[models.FieldPaymentMode] != "online" {
		t.Fatal("explicit values must win over defaults")
	}
	if _, ok := tx[models.FieldCategory]; ok {
		t.Fatal("transactions have no category")
	}

	del := mustInsert(t, s, models.KindDeleted, models.Row{models.FieldTableName: "expenses"})
	if !models.TimeValue(del[models.FieldDeletedAt]).Equal(now) {
		t.Fatal("expected deleted_at default")
	}
}

func TestMemoryInsertDoesNotAlias(t *testing.T) {
	s := newTestMemoryStore(time.Now())
	in := models.Row{models.FieldAmount: 1.0, models.FieldData: map[string]any{"x": 1}}
	out := mustInsert(t, s, models.KindDeleted, in)

	in[models.FieldAmount] = 99.0
	out[models.FieldAmount] = 42.0

	rows, _ := s.Query(context.Background(), models.KindDeleted, dto.RecordQuery{})
	if rows[0][models.FieldAmount] != 1.0 {
		t.Fatalf("stored row was mutated: %v", rows[0])
	}
}

func TestMemoryQueryFiltersOrderAndLimit(t *testing.T) {
	s := newTestMemoryStore(time.Now())
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	mustInsert(t, s, models.KindTransactions, models.Row{"date": day(1, 9), "payment_mode": "cash", "amount": 1.0})
	mustInsert(t, s, models.KindTransactions, models.Row{"date": day(2, 9), "payment_mode": "online", "amount": 2.0})
	mustInsert(t, s, models.KindTransactions, models.Row{"date": day(3, 9), "payment_mode": "cash", "amount": 3.0})
	mustInsert(t, s, models.KindTransactions, models.Row{"date": day(4, 9), "payment_mode": "cash", "amount": 4.0})

	q := dto.RecordQuery{OrderBy: "date", Desc: true}.
		Where("date", dto.OpGte, day(2, 0)).
		Where("date", dto.OpLte, day(3, 23)).
		Where("payment_mode", dto.OpEq, "cash")
	rows, err := s.Query(context.Background(), models.KindTransactions, q)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0]["amount"] != 3.0 {
		t.Fatalf("unexpected rows: %v", rows)
	}

	rows, _ = s.Query(context.Background(), models.KindTransactions, dto.RecordQuery{OrderBy: "date", Desc: true, Limit: 2})
	if len(rows) != 2 || rows[0]["amount"] != 4.0 || rows[1]["amount"] != 3.0 {
		t.Fatalf("expected the two newest rows, got %v", rows)
	}

	rows, _ = s.Query(context.Background(), models.KindTransactions, dto.RecordQuery{OrderBy: "date"})
	if rows[0]["amount"] != 1.0 {
		t.Fatalf("expected ascending order, got %v", rows)
	}
}

func TestMemoryQueryByID(t *testing.T) {
	s := newTestMemoryStore(time.Now())
	mustInsert(t, s, models.KindExpenses, models.Row{"amount": 1.0})
	second := mustInsert(t, s, models.KindExpenses, models.Row{"amount": 2.0})

	rows, _ := s.Query(context.Background(), models.KindExpenses, dto.RecordQuery{}.Where(models.FieldID, dto.OpEq, second.ID()))
	if len(rows) != 1 || rows[0]["amount"] != 2.0 {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestMemoryQueryMixedTypesNeverMatch(t *testing.T) {
	s := newTestMemoryStore(time.Now())
	mustInsert(t, s, models.KindTransactions, models.Row{"date": "not a date", "amount": 1.0})

	rows, _ := s.Query(context.Background(), models.KindTransactions,
		dto.RecordQuery{}.Where("date", dto.OpGte, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	if len(rows) != 0 {
		t.Fatalf("unparseable dates should not match a range, got %v", rows)
	}
}

func TestMemoryDelete(t *testing.T) {
	s := newTestMemoryStore(time.Now())
	row := mustInsert(t, s, models.KindTransactions, models.Row{"amount": 1.0})

	if err := s.Delete(context.Background(), models.KindTransactions, row.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := s.Delete(context.Background(), models.KindTransactions, row.ID())
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}
