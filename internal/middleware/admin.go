package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/GregMSThompson/store-tracker/pkg/logger"
)

const AdminPasscodeHeader = "X-Admin-Passcode"

type adminGate struct {
	passcode []byte
}

func NewAdminGate(passcode string) *adminGate {
	return &adminGate{passcode: []byte(passcode)}
}

// AdminOnly rejects requests whose passcode header does not match. An empty
// configured passcode rejects everything.
func (g *adminGate) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(AdminPasscodeHeader)
		if given == "" {
			http.Error(w, "missing admin passcode", http.StatusUnauthorized)
			return
		}
		if len(g.passcode) == 0 || subtle.ConstantTimeCompare([]byte(given), g.passcode) != 1 {
			logger.FromContext(r.Context()).Warn("admin passcode rejected")
			http.Error(w, "invalid admin passcode", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
