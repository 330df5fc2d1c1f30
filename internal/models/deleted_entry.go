package models

import (
	"time"
)

const (
	FieldTableName = "table_name"
	FieldRecordID  = "record_id"
	FieldData      = "data"
	FieldDeletedAt = "deleted_at"
)

// DeletedEntry is the archived snapshot of a soft-deleted transaction or expense.
type DeletedEntry struct {
	ID        string    `json:"id"`
	TableName Kind      `json:"table_name"`
	RecordID  string    `json:"record_id"`
	Data      Row       `json:"data"`
	DeletedAt time.Time `json:"deleted_at"`
}

func DeletedEntryFromRow(r Row) DeletedEntry {
	data, _ := AsRow(r[FieldData])
	return DeletedEntry{
		ID:        r.ID(),
		TableName: Kind(StringValue(r[FieldTableName])),
		RecordID:  StringValue(r[FieldRecordID]),
		Data:      data,
		DeletedAt: TimeValue(r[FieldDeletedAt]),
	}
}

// Row is the archive row written to the store; the identifier is left to the store.
func (d DeletedEntry) Row() Row {
	return Row{
		FieldTableName: string(d.TableName),
		FieldRecordID:  d.RecordID,
		FieldData:      map[string]any(d.Data.Clone()),
		FieldDeletedAt: d.DeletedAt,
	}
}
