package database

import "errors"

var (
	// ErrNotFound means the statement matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable means no connection to the database could be acquired.
	ErrUnavailable = errors.New("database unavailable")
)

// QueryError is a failed statement. Its message is the driver's message,
// unchanged, so that it can be reported to the client as is.
type QueryError struct {
	Table string
	Op    string
	Err   error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
