package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/store-tracker/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	LedgerSvc       ledgerService
	LifecycleSvc    lifecycleService
	ReportSvc       reportService
	AdminPasscode   string
	DeletedLimit    int
}
