package handlers

import (
	"net/http"
)

func (h *ledgerHandlers) ExportReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.ReportSvc.Export(r.Context(), filterFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteFile(w, r, file.Name, file.ContentType, file.Body)
}
