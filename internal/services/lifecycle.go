package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/models"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

// recordStore is the generic table surface the lifecycle manager runs on.
type recordStore interface {
	Query(ctx context.Context, kind models.Kind, q dto.RecordQuery) ([]models.Row, error)
	Insert(ctx context.Context, kind models.Kind, row models.Row) (models.Row, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

// entryFields is the validated shape of a create form.
type entryFields struct {
	Amount      string `json:"amount" validate:"required,amount"`
	PaymentMode string `json:"payment_mode" validate:"oneof=cash online"`
	Category    string `json:"category" validate:"omitempty,oneof=salary purchase maintenance misc"`
}

type lifecycleService struct {
	records  recordStore
	validate *validator.Validate
	clockNow func() time.Time

	mu   sync.Mutex
	busy map[models.Kind]bool
}

func NewLifecycleService(records recordStore) *lifecycleService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	// amount accepts any finite float literal, including 1e3 and .5.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return &lifecycleService{
		records:  records,
		validate: v,
		clockNow: time.Now,
		busy:     make(map[models.Kind]bool),
	}
}

// Busy reports whether a create for kind is in flight.
func (s *lifecycleService) Busy(kind models.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[kind]
}

func (s *lifecycleService) acquire(kind models.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[kind] {
		return false
	}
	s.busy[kind] = true
	return true
}

func (s *lifecycleService) release(kind models.Kind) {
	s.mu.Lock()
	delete(s.busy, kind)
	s.mu.Unlock()
}

// Create validates the form fields and inserts a new entry. The entry shows up
// on the next ledger load; nothing is patched locally.
func (s *lifecycleService) Create(ctx context.Context, kind models.Kind, fields models.Row) (models.Row, error) {
	if !kind.Restorable() {
		return nil, errs.NewValidationError(fmt.Sprintf("cannot create entries in %q", kind))
	}
	if isBlank(fields[models.FieldAmount]) {
		return nil, errs.NewValidationError("amount is required")
	}
	row, err := s.buildRow(kind, fields)
	if err != nil {
		return nil, err
	}

	if !s.acquire(kind) {
		return nil, errs.NewBusyError(string(kind))
	}
	defer s.release(kind)

	log := logger.FromContext(ctx)
	inserted, err := s.records.Insert(ctx, kind, row)
	if err != nil {
		log.Error("failed to create entry", "kind", kind, "error", err)
		return nil, storeError("create", "failed to save "+string(kind)+" entry", err)
	}

	log.Info("entry created", "kind", kind, "id", inserted.ID())
	return inserted, nil
}

// buildRow keeps only the fields that belong to kind, applies the form
// defaults and stores the amount as a number.
func (s *lifecycleService) buildRow(kind models.Kind, fields models.Row) (models.Row, error) {
	in := entryFields{
		Amount:      strings.TrimSpace(models.StringValue(fields[models.FieldAmount])),
		PaymentMode: strings.TrimSpace(models.StringValue(fields[models.FieldPaymentMode])),
	}
	if in.PaymentMode == "" {
		in.PaymentMode = string(models.PaymentCash)
	}
	if kind == models.KindExpenses {
		in.Category = strings.TrimSpace(models.StringValue(fields[models.FieldCategory]))
		if in.Category == "" {
			in.Category = string(models.CategoryMisc)
		}
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	amount, err := strconv.ParseFloat(in.Amount, 64)
	if err != nil || amount < 0 {
		return nil, errs.NewValidationError("amount must be a non-negative number")
	}

	row := models.Row{
		models.FieldAmount:      amount,
		models.FieldPaymentMode: in.PaymentMode,
	}
	switch kind {
	case models.KindTransactions:
		row[models.FieldInvoiceNumber] = strings.TrimSpace(models.StringValue(fields[models.FieldInvoiceNumber]))
		row[models.FieldRemarks] = strings.TrimSpace(models.StringValue(fields[models.FieldRemarks]))
	case models.KindExpenses:
		row[models.FieldDescription] = strings.TrimSpace(models.StringValue(fields[models.FieldDescription]))
		row[models.FieldCategory] = in.Category
	}
	return row, nil
}

// SoftDelete archives snapshot and then removes the live row. The archive is
// always written first: if the delete fails the entry is archived twice at
// worst, never lost.
func (s *lifecycleService) SoftDelete(ctx context.Context, kind models.Kind, id string, snapshot models.Row) (models.DeletedEntry, error) {
	if !kind.Restorable() {
		return models.DeletedEntry{}, errs.NewValidationError(fmt.Sprintf("cannot delete entries from %q", kind))
	}
	if id == "" {
		return models.DeletedEntry{}, errs.NewValidationError("id is required")
	}
	if len(snapshot) == 0 {
		return models.DeletedEntry{}, errs.NewValidationError("a snapshot of the entry is required before it can be deleted")
	}
	if sid := snapshot.ID(); sid != "" && sid != id {
		return models.DeletedEntry{}, errs.NewValidationError(fmt.Sprintf("snapshot belongs to %q, not %q", sid, id))
	}

	log := logger.FromContext(ctx).With("kind", kind, "record_id", id)

	entry := models.DeletedEntry{
		TableName: kind,
		RecordID:  id,
		Data:      snapshot.Clone(),
		DeletedAt: s.clockNow(),
	}
	archived, err := s.records.Insert(ctx, models.KindDeleted, entry.Row())
	if err != nil {
		log.Error("failed to archive entry, delete aborted", "error", err)
		return models.DeletedEntry{}, storeError("create", "failed to archive entry; nothing was deleted", err)
	}
	entry.ID = archived.ID()

	if err := s.records.Delete(ctx, kind, id); err != nil {
		log.Warn("entry archived but not deleted", "archive_id", entry.ID, "error", err)
		return entry, errs.NewArchiveInconsistencyError("delete", entry.ID,
			"entry was archived but could not be deleted; retry the delete", err)
	}

	log.Info("entry soft-deleted", "archive_id", entry.ID)
	return entry, nil
}

// SoftDeleteByID looks up the current row so the archive holds exactly what
// the store had before the delete.
func (s *lifecycleService) SoftDeleteByID(ctx context.Context, kind models.Kind, id string) (models.DeletedEntry, error) {
	if !kind.Restorable() {
		return models.DeletedEntry{}, errs.NewValidationError(fmt.Sprintf("cannot delete entries from %q", kind))
	}
	snapshot, err := s.findByID(ctx, kind, id)
	if err != nil {
		return models.DeletedEntry{}, err
	}
	return s.SoftDelete(ctx, kind, id, snapshot)
}

// Restore reinserts the archived snapshot into its original collection and
// then retires the archive entry. The restored row gets a new identifier.
func (s *lifecycleService) Restore(ctx context.Context, entry models.DeletedEntry) (models.Row, error) {
	if !entry.TableName.Restorable() {
		return nil, errs.NewValidationError(fmt.Sprintf("cannot restore into %q", entry.TableName))
	}
	if len(entry.Data) == 0 {
		return nil, errs.NewValidationError("archive entry has no snapshot to restore")
	}

	log := logger.FromContext(ctx).With("kind", entry.TableName, "archive_id", entry.ID)

	restored, err := s.records.Insert(ctx, entry.TableName, entry.Data)
	if err != nil {
		log.Error("failed to restore entry", "error", err)
		return nil, storeError("create", "failed to restore entry; the archive was kept", err)
	}

	if err := s.records.Delete(ctx, models.KindDeleted, entry.ID); err != nil {
		log.Warn("entry restored but archive entry kept", "restored_id", restored.ID(), "error", err)
		return restored, errs.NewArchiveInconsistencyError("restore", entry.ID,
			"entry was restored but its archive entry could not be removed; remove it before restoring again", err)
	}

	log.Info("entry restored", "restored_id", restored.ID())
	return restored, nil
}

func (s *lifecycleService) RestoreByID(ctx context.Context, archiveID string) (models.Row, error) {
	row, err := s.findByID(ctx, models.KindDeleted, archiveID)
	if err != nil {
		return nil, err
	}
	return s.Restore(ctx, models.DeletedEntryFromRow(row))
}

// ListDeleted returns archive entries, newest first.
func (s *lifecycleService) ListDeleted(ctx context.Context, limit int) ([]models.DeletedEntry, error) {
	rows, err := s.records.Query(ctx, models.KindDeleted, dto.RecordQuery{
		OrderBy: models.FieldDeletedAt,
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, storeError("read", "failed to list deleted entries", err)
	}
	out := make([]models.DeletedEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.DeletedEntryFromRow(row))
	}
	return out, nil
}

func (s *lifecycleService) findByID(ctx context.Context, kind models.Kind, id string) (models.Row, error) {
	if id == "" {
		return nil, errs.NewValidationError("id is required")
	}
	rows, err := s.records.Query(ctx, kind, dto.RecordQuery{Limit: 1}.Where(models.FieldID, dto.OpEq, id))
	if err != nil {
		return nil, storeError("read", "failed to look up "+string(kind)+" entry", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewNotFoundError(string(kind) + " entry not found")
	}
	return rows[0], nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// storeError keeps typed errors from the store and wraps anything else.
func storeError(operation, message string, err error) error {
	var (
		nf *errs.NotFoundError
		db *errs.DatabaseError
		ve *errs.ValidationError
	)
	if errors.As(err, &nf) || errors.As(err, &db) || errors.As(err, &ve) {
		return err
	}
	return errs.NewDatabaseError(operation, message, err)
}

func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return errs.NewValidationError(err.Error())
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return errs.NewValidationError(fe.Field() + " is required")
	case "amount":
		return errs.NewValidationError(fe.Field() + " must be a number")
	case "oneof":
		return errs.NewValidationError(fe.Field() + " must be one of: " + fe.Param())
	default:
		return errs.NewValidationError(fe.Field() + " is invalid")
	}
}
