package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/models"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeFileCalled bool
	writeFileName   string
	writeFileBody   []byte
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteFile(w http.ResponseWriter, _ *http.Request, name, _ string, body []byte) {
	s.writeFileCalled = true
	s.writeFileName = name
	s.writeFileBody = body
	w.WriteHeader(http.StatusOK)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubLedgerService struct {
	view       dto.LedgerView
	err        error
	calls      int
	lastFilter dto.LedgerFilter
}

func (s *stubLedgerService) Refresh(_ context.Context, f dto.LedgerFilter) (dto.LedgerView, error) {
	s.calls++
	s.lastFilter = f
	return s.view, s.err
}

type stubLifecycleService struct {
	createRow    models.Row
	createErr    error
	createKind   models.Kind
	createFields models.Row

	deleteEntry models.DeletedEntry
	deleteErr   error
	deleteKind  models.Kind
	deleteID    string

	listEntries []models.DeletedEntry
	listErr     error
	listLimit   int

	restoreRow models.Row
	restoreErr error
	restoreID  string
}

func (s *stubLifecycleService) Create(_ context.Context, kind models.Kind, fields models.Row) (models.Row, error) {
	s.createKind = kind
	s.createFields = fields
	return s.createRow, s.createErr
}

func (s *stubLifecycleService) SoftDeleteByID(_ context.Context, kind models.Kind, id string) (models.DeletedEntry, error) {
	s.deleteKind = kind
	s.deleteID = id
	return s.deleteEntry, s.deleteErr
}

func (s *stubLifecycleService) ListDeleted(_ context.Context, limit int) ([]models.DeletedEntry, error) {
	s.listLimit = limit
	return s.listEntries, s.listErr
}

func (s *stubLifecycleService) RestoreByID(_ context.Context, archiveID string) (models.Row, error) {
	s.restoreID = archiveID
	return s.restoreRow, s.restoreErr
}

type stubReportService struct {
	file       dto.ReportFile
	err        error
	lastFilter dto.LedgerFilter
}

func (s *stubReportService) Export(_ context.Context, f dto.LedgerFilter) (dto.ReportFile, error) {
	s.lastFilter = f
	return s.file, s.err
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}
