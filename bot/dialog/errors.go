package dialog

import "fmt"

// Error is a classified dialog failure. Code is surfaced in handler
// summary logs.
type Error struct {
	code string
	op   string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

func (e *Error) Code() string { return e.code }

func (e *Error) Unwrap() error { return e.err }

func newPersistenceError(op string, err error) *Error {
	return &Error{code: "PERSISTENCE_ERROR", op: op, err: err}
}

func newTransportError(op string, err error) *Error {
	return &Error{code: "TRANSPORT_ERROR", op: op, err: err}
}
