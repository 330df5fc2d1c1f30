package models

import (
	"time"
)

// Transaction is a recorded sale.
type Transaction struct {
	ID            string      `json:"id"`
	Date          time.Time   `json:"date"`
	InvoiceNumber string      `json:"invoice_number,omitempty"`
	PaymentMode   PaymentMode `json:"payment_mode"`
	Amount        float64     `json:"amount"`
	Remarks       string      `json:"remarks,omitempty"`
}

func TransactionFromRow(r Row) Transaction {
	return Transaction{
		ID:            r.ID(),
		Date:          TimeValue(r[FieldDate]),
		InvoiceNumber: StringValue(r[FieldInvoiceNumber]),
		PaymentMode:   PaymentMode(StringValue(r[FieldPaymentMode])),
		Amount:        AmountValue(r[FieldAmount]),
		Remarks:       StringValue(r[FieldRemarks]),
	}
}
