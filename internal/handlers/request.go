package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/store-tracker/internal/dto"
	"github.com/GregMSThompson/store-tracker/internal/errs"
)

// maxBodyBytes caps form submissions.
const maxBodyBytes = 1 << 16

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("request body is not valid JSON")
	}
	return nil
}

// filterFromQuery reads the dashboard filters shared by every ledger route.
func filterFromQuery(r *http.Request) dto.LedgerFilter {
	q := r.URL.Query()
	return dto.LedgerFilter{
		StartDate:   q.Get("start"),
		EndDate:     q.Get("end"),
		PaymentMode: q.Get("mode"),
		Category:    q.Get("category"),
	}
}
