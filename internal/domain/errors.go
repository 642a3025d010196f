package domain

import "errors"

// ErrDuplicateHeader is returned when the header row names a column twice.
var ErrDuplicateHeader = errors.New("header row contains duplicate column names")

// ConnectionError covers authorization, opening the store and schema repair.
// It is terminal for an evaluation.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "connection error: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// LoadError wraps a failure to read the stored rows.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return "load error: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// InsertError wraps a failure to append a row. The store may have been
// partially mutated.
type InsertError struct {
	Err error
}

func (e *InsertError) Error() string {
	return "insert error: " + e.Err.Error()
}

func (e *InsertError) Unwrap() error { return e.Err }
