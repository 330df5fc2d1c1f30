package store

import (
	"context"
	"time"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

// Records is the collection-agnostic record store behind both backends.
type Records interface {
	Query(ctx context.Context, kind models.Kind, q dto.RecordQuery) ([]models.Row, error)
	Insert(ctx context.Context, kind models.Kind, row models.Row) (models.Row, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

var (
	_ Records = (*recordStore)(nil)
	_ Records = (*memoryStore)(nil)
)

// withDefaults prepares a row for insertion: the identifier is always left to
// the store and the collection defaults fill in whatever the caller left out.
func withDefaults(kind models.Kind, row models.Row, now time.Time) models.Row {
	out := row.Without(models.FieldID)
	switch kind {
	case models.KindTransactions:
		setDefault(out, models.FieldDate, now)
		setDefault(out, models.FieldPaymentMode, string(models.PaymentCash))
	case models.KindExpenses:
		setDefault(out, models.FieldDate, now)
		setDefault(out, models.FieldPaymentMode, string(models.PaymentCash))
		setDefault(out, models.FieldCategory, string(models.CategoryMisc))
	case models.KindDeleted:
		setDefault(out, models.FieldDeletedAt, now)
	}
	return out
}

func setDefault(row models.Row, field string, value any) {
	switch v := row[field].(type) {
	case nil:
		row[field] = value
	case string:
		if v == "" {
			row[field] = value
		}
	case time.Time:
		if v.IsZero() {
			row[field] = value
		}
	}
}
