package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
	"github.com/GregMSThompson/store-tracker/internal/middleware"
	"github.com/GregMSThompson/store-tracker/internal/response"
	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

const defaultDeletedLimit = 200

type adminHandlers struct {
	ResponseHandler response.ResponseHandler
	LifecycleSvc    lifecycleService
	AdminPasscode   string
	DeletedLimit    int
}

func NewAdminHandlers(deps *Deps) *adminHandlers {
	limit := deps.DeletedLimit
	if limit <= 0 {
		limit = defaultDeletedLimit
	}
	return &adminHandlers{
		ResponseHandler: deps.ResponseHandler,
		LifecycleSvc:    deps.LifecycleSvc,
		AdminPasscode:   deps.AdminPasscode,
		DeletedLimit:    limit,
	}
}

func (h *adminHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.NewAdminGate(h.AdminPasscode).AdminOnly)
	r.Get("/deleted", h.ListDeleted)
	r.Post("/deleted/{id}/restore", h.RestoreDeleted)
	return r
}

func (h *adminHandlers) ListDeleted(w http.ResponseWriter, r *http.Request) {
	limit, err := h.limitFromQuery(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	entries, err := h.LifecycleSvc.ListDeleted(r.Context(), limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, entries)
}

func (h *adminHandlers) RestoreDeleted(w http.ResponseWriter, r *http.Request) {
	archiveID := chi.URLParam(r, "id")
	_, ctx := logger.With(r.Context(), "archive_id", archiveID)

	restored, err := h.LifecycleSvc.RestoreByID(ctx, archiveID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result := dto.RestoreResult{Restored: restored}
	entries, err := h.LifecycleSvc.ListDeleted(ctx, h.DeletedLimit)
	if err != nil {
		logger.FromContext(ctx).Warn("entry restored but archive list reload failed", "error", err)
		result.DeletedError = "the entry was restored but the archive list could not be reloaded: " + err.Error()
	} else {
		result.Deleted = entries
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *adminHandlers) limitFromQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.DeletedLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errs.NewValidationError("limit must be a positive integer")
	}
	return n, nil
}
