package dto

// LedgerFilter narrows the dashboard. Dates are YYYY-MM-DD or a full
// timestamp; a day-only end date covers the whole day.
type LedgerFilter struct {
	StartDate   string
	EndDate     string
	PaymentMode string
	Category    string
}
