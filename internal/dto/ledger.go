package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/GregMSThompson/store-tracker/internal/models"
)

type Summary struct {
	CashIn   float64 `json:"cashIn"`
	OnlineIn float64 `json:"onlineIn"`
	Expenses float64 `json:"expenses"`
	Closing  float64 `json:"closing"`
}

// DailyPoint is one calendar day of the cash-flow series.
type DailyPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD in the configured location
	Cash     float64 `json:"cash"`
	Online   float64 `json:"online"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type LedgerView struct {
	Transactions []models.Transaction        `json:"transactions"`
	Expenses     []models.Expense            `json:"expenses"`
	Summary      Summary                     `json:"summary"`
	Daily        []DailyPoint                `json:"daily"`
	Categories   map[models.Category]float64 `json:"categories"`
}

// AmountInput holds the amount exactly as the form sent it. Both JSON numbers
// and strings are accepted so a blank field can be told apart from zero.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountInput(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

type CreateTransactionRequest struct {
	InvoiceNumber string      `json:"invoice_number"`
	PaymentMode   string      `json:"payment_mode"`
	Amount        AmountInput `json:"amount"`
	Remarks       string      `json:"remarks"`
}

// Fields returns the raw form fields as a row for the lifecycle manager.
func (r CreateTransactionRequest) Fields() models.Row {
	return models.Row{
		models.FieldInvoiceNumber: r.InvoiceNumber,
		models.FieldPaymentMode:   r.PaymentMode,
		models.FieldAmount:        string(r.Amount),
		models.FieldRemarks:       r.Remarks,
	}
}

type CreateExpenseRequest struct {
	Description string      `json:"description"`
	Category    string      `json:"category"`
	PaymentMode string      `json:"payment_mode"`
	Amount      AmountInput `json:"amount"`
}

func (r CreateExpenseRequest) Fields() models.Row {
	return models.Row{
		models.FieldDescription: r.Description,
		models.FieldCategory:    r.Category,
		models.FieldPaymentMode: r.PaymentMode,
		models.FieldAmount:      string(r.Amount),
	}
}

// ReportFile is a generated export ready to be sent as a download.
type ReportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// LedgerUpdate answers a mutation with the affected entry and the reloaded
// ledger. When the reload fails the mutation still stands: Ledger is nil and
// LedgerError says why.
type LedgerUpdate struct {
	Entry       any         `json:"entry"`
	Ledger      *LedgerView `json:"ledger,omitempty"`
	LedgerError string      `json:"ledger_error,omitempty"`
}

type RestoreResult struct {
	Restored     models.Row            `json:"restored"`
	Deleted      []models.DeletedEntry `json:"deleted"`
	DeletedError string                `json:"deleted_error,omitempty"`
}
