package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
	"github.com/GregMSThompson/store-tracker/internal/response"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

type ledgerService interface {
	Refresh(ctx context.Context, f dto.LedgerFilter) (dto.LedgerView, error)
}

type lifecycleService interface {
	Create(ctx context.Context, kind models.Kind, fields models.Row) (models.Row, error)
	SoftDeleteByID(ctx context.Context, kind models.Kind, id string) (models.DeletedEntry, error)
	ListDeleted(ctx context.Context, limit int) ([]models.DeletedEntry, error)
	RestoreByID(ctx context.Context, archiveID string) (models.Row, error)
}

type reportService interface {
	Export(ctx context.Context, f dto.LedgerFilter) (dto.ReportFile, error)
}

type ledgerHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       ledgerService
	LifecycleSvc    lifecycleService
	ReportSvc       reportService
}

func NewLedgerHandlers(deps *Deps) *ledgerHandlers {
	return &ledgerHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
		LifecycleSvc:    deps.LifecycleSvc,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *ledgerHandlers) LedgerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetLedger)
	r.Get("/export", h.ExportReport)
	r.Post("/transactions", h.CreateTransaction)
	r.Post("/expenses", h.CreateExpense)
	r.Delete("/transactions/{id}", h.DeleteTransaction)
	r.Delete("/expenses/{id}", h.DeleteExpense)
	return r
}

func (h *ledgerHandlers) GetLedger(w http.ResponseWriter, r *http.Request) {
	view, err := h.LedgerSvc.Refresh(r.Context(), filterFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *ledgerHandlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.create(w, r, models.KindTransactions, req.Fields())
}

func (h *ledgerHandlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.create(w, r, models.KindExpenses, req.Fields())
}

func (h *ledgerHandlers) create(w http.ResponseWriter, r *http.Request, kind models.Kind, fields models.Row) {
	_, ctx := logger.With(r.Context(), "kind", kind)

	row, err := h.LifecycleSvc.Create(ctx, kind, fields)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.writeUpdate(w, r, http.StatusCreated, row)
}

func (h *ledgerHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	h.softDelete(w, r, models.KindTransactions)
}

func (h *ledgerHandlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.softDelete(w, r, models.KindExpenses)
}

func (h *ledgerHandlers) softDelete(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	id := chi.URLParam(r, "id")
	_, ctx := logger.With(r.Context(), "kind", kind, "id", id)

	entry, err := h.LifecycleSvc.SoftDeleteByID(ctx, kind, id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.writeUpdate(w, r, http.StatusOK, entry)
}

// writeUpdate reloads the ledger with the caller's current filters. The
// mutation has already been stored, so a failed reload is reported inside the
// success body and never as an error status.
func (h *ledgerHandlers) writeUpdate(w http.ResponseWriter, r *http.Request, status int, entry any) {
	update := dto.LedgerUpdate{Entry: entry}
	view, err := h.LedgerSvc.Refresh(r.Context(), filterFromQuery(r))
	if err != nil {
		logger.FromContext(r.Context()).Warn("entry saved but ledger reload failed", "error", err)
		update.LedgerError = "the change was saved but the ledger could not be reloaded: " + err.Error()
	} else {
		update.Ledger = &view
	}
	h.ResponseHandler.WriteSuccess(w, r, status, update)
}
