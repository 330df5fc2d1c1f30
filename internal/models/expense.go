package models

import (
	"time"
)

// Expense is money paid out of the shop, from the till or online.
type Expense struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	PaymentMode PaymentMode `json:"payment_mode"`
	Amount      float64     `json:"amount"`
}

func ExpenseFromRow(r Row) Expense {
	return Expense{
		ID:          r.ID(),
		Date:        TimeValue(r[FieldDate]),
		Description: StringValue(r[FieldDescription]),
		Category:    Category(StringValue(r[FieldCategory])),
		PaymentMode: PaymentMode(StringValue(r[FieldPaymentMode])),
		Amount:      AmountValue(r[FieldAmount]),
	}
}
