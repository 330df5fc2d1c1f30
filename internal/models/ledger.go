package models

import "time"

// LedgerState is the most recently loaded pair of collections. It is rebuilt
// from the store after every mutation and never patched in place.
type LedgerState struct {
	Transactions []Transaction `json:"transactions"`
	Expenses     []Expense     `json:"expenses"`
	LoadedAt     time.Time     `json:"loaded_at"`
}
