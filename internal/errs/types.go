package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// BusyError rejects a create while another create for the same kind is in flight.
type BusyError struct {
	ErrorMessage
	Kind string
}

// DatabaseError is any failure returned by the backing record store.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ArchiveInconsistencyError reports that the second step of a soft-delete or
// restore failed after the first one succeeded. The archive entry named by
// ArchiveID is still present and the caller can retry.
type ArchiveInconsistencyError struct {
	ErrorMessage
	Stage     string // "delete" or "restore"
	ArchiveID string
	Err       error
}

func (e *ArchiveInconsistencyError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ArchiveInconsistencyError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewBusyError(kind string) *BusyError {
	return &BusyError{
		ErrorMessage: ErrorMessage{Message: "a " + kind + " entry is already being saved"},
		Kind:         kind,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewArchiveInconsistencyError(stage, archiveID, message string, err error) *ArchiveInconsistencyError {
	return &ArchiveInconsistencyError{
		ErrorMessage: ErrorMessage{Message: message},
		Stage:        stage,
		ArchiveID:    archiveID,
		Err:          err,
	}
}
