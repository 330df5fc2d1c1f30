package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/models"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

type ledgerStore interface {
	Query(ctx context.Context, kind models.Kind, q dto.RecordQuery) ([]models.Row, error)
}

type ledgerService struct {
	records  ledgerStore
	loc      *time.Location
	clockNow func() time.Time
}

func NewLedgerService(records ledgerStore, loc *time.Location) *ledgerService {
	if loc == nil {
		loc = time.Local
	}
	return &ledgerService{records: records, loc: loc, clockNow: time.Now}
}

// Load fetches both collections concurrently and returns them as one state.
// The state is only built once both fetches have completed.
func (s *ledgerService) Load(ctx context.Context, f dto.LedgerFilter) (models.LedgerState, error) {
	txQuery, exQuery, err := s.queries(f)
	if err != nil {
		return models.LedgerState{}, err
	}

	var txRows, exRows []models.Row
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.records.Query(gctx, models.KindTransactions, txQuery)
		if err != nil {
			return storeError("read", "failed to load transactions", err)
		}
		txRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.records.Query(gctx, models.KindExpenses, exQuery)
		if err != nil {
			return storeError("read", "failed to load expenses", err)
		}
		exRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Error("failed to load ledger", "error", err)
		return models.LedgerState{}, err
	}

	state := models.LedgerState{
		Transactions: make([]models.Transaction, 0, len(txRows)),
		Expenses:     make([]models.Expense, 0, len(exRows)),
		LoadedAt:     s.clockNow(),
	}
	for _, row := range txRows {
		state.Transactions = append(state.Transactions, models.TransactionFromRow(row))
	}
	for _, row := range exRows {
		state.Expenses = append(state.Expenses, models.ExpenseFromRow(row))
	}
	return state, nil
}

// View derives everything the dashboard shows from a loaded state.
func (s *ledgerService) View(state models.LedgerState) dto.LedgerView {
	return dto.LedgerView{
		Transactions: state.Transactions,
		Expenses:     state.Expenses,
		Summary:      Summarize(state.Transactions, state.Expenses),
		Daily:        BuildDailySeries(state.Transactions, state.Expenses, s.loc),
		Categories:   BuildCategoryBreakdown(state.Expenses),
	}
}

func (s *ledgerService) Refresh(ctx context.Context, f dto.LedgerFilter) (dto.LedgerView, error) {
	state, err := s.Load(ctx, f)
	if err != nil {
		return dto.LedgerView{}, err
	}
	return s.View(state), nil
}

// queries turns the dashboard filter into one query per collection, newest first.
func (s *ledgerService) queries(f dto.LedgerFilter) (tx, ex dto.RecordQuery, err error) {
	base := dto.RecordQuery{OrderBy: models.FieldDate, Desc: true}

	var from time.Time
	if f.StartDate != "" {
		from, err = parseBound(f.StartDate, false, s.loc)
		if err != nil {
			return tx, ex, errs.NewValidationError("invalid start date: " + f.StartDate)
		}
		base = base.Where(models.FieldDate, dto.OpGte, from)
	}
	if f.EndDate != "" {
		to, err := parseBound(f.EndDate, true, s.loc)
		if err != nil {
			return tx, ex, errs.NewValidationError("invalid end date: " + f.EndDate)
		}
		if !from.IsZero() && to.Before(from) {
			return tx, ex, errs.NewValidationError("end date is before start date")
		}
		base = base.Where(models.FieldDate, dto.OpLte, to)
	}

	switch models.PaymentMode(f.PaymentMode) {
	case "":
	case models.PaymentCash, models.PaymentOnline:
		base = base.Where(models.FieldPaymentMode, dto.OpEq, f.PaymentMode)
	default:
		return tx, ex, errs.NewValidationError("payment mode must be one of: cash online")
	}

	tx, ex = base, base
	switch models.Category(f.Category) {
	case "":
	case models.CategorySalary, models.CategoryPurchase, models.CategoryMaintenance, models.CategoryMisc:
		ex = ex.Where(models.FieldCategory, dto.OpEq, f.Category)
	default:
		return tx, ex, errs.NewValidationError("category must be one of: salary purchase maintenance misc")
	}
	return tx, ex, nil
}

// parseBound reads a filter date. A day-only end date is stretched to
// 23:59:59 so the whole day is included.
func parseBound(value string, end bool, loc *time.Location) (time.Time, error) {
	if day, err := time.ParseInLocation(dayLayout, value, loc); err == nil {
		if end {
			return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc), nil
		}
		return day, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, loc)
}
