package models

// Kind names a store collection.
type Kind string

const (
	KindTransactions Kind = "transactions"
	KindExpenses     Kind = "expenses"
	KindDeleted      Kind = "deleted_entries"
)

// Restorable reports whether entries of this kind go through the soft-delete
// lifecycle.
func (k Kind) Restorable() bool {
	return k == KindTransactions || k == KindExpenses
}

type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentOnline PaymentMode = "online"
)

type Category string

const (
	CategorySalary      Category = "salary"
	CategoryPurchase    Category = "purchase"
	CategoryMaintenance Category = "maintenance"
	CategoryMisc        Category = "misc"
)

// Store field names shared by transactions and expenses.
const (
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldPaymentMode   = "payment_mode"
	FieldInvoiceNumber = "invoice_number"
	FieldRemarks       = "remarks"
	FieldDescription   = "description"
	FieldCategory      = "category"
)
