package errors

import (
	"errors"
	"fmt"
)

// Failure taxonomy of a sync run. The kind decides whether the run
// aborts, the item is retried later, or the item is skipped for good.
var (
	// ErrSourceUnavailable: Instagram unreachable or auth failed. Fatal,
	// the run aborts; nothing was written for unprocessed items.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSinkUnavailable: WordPress transient failure (network, 429,
	// 5xx). Retried with backoff; an exhausted item is left for the
	// next invocation since the ledger was never updated.
	ErrSinkUnavailable = errors.New("sink unavailable")

	// ErrSinkRejected: WordPress permanent failure (other 4xx). The
	// item is skipped and the run continues.
	ErrSinkRejected = errors.New("sink rejected")

	// ErrLedgerIO: the local ledger is unreadable or unwritable. Fatal,
	// correctness cannot be guaranteed without it.
	ErrLedgerIO = errors.New("ledger io error")
)

// Error carries a taxonomy kind alongside a wrapped cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// New creates a new error with a message and no kind.
func New(message string) error {
	return &Error{Message: message}
}

// Wrap wraps an error with an additional message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// WrapKind wraps an error with a taxonomy kind and message.
func WrapKind(err error, kind error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

func IsSinkUnavailable(err error) bool {
	return errors.Is(err, ErrSinkUnavailable)
}

func IsSinkRejected(err error) bool {
	return errors.Is(err, ErrSinkRejected)
}

func IsLedgerIO(err error) bool {
	return errors.Is(err, ErrLedgerIO)
}

// IsFatal reports whether the error must abort the whole run.
func IsFatal(err error) bool {
	return IsSourceUnavailable(err) || IsLedgerIO(err)
}
