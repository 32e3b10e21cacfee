package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrEmpty indicates the input has no header or no data rows.
	ErrEmpty = errors.New("file is empty")
	// ErrParse indicates the input could not be parsed as a table.
	ErrParse = errors.New("could not parse table")
	// ErrUnsupported indicates no loader handles the file extension.
	ErrUnsupported = errors.New("unsupported table format")
	// ErrUnknownColumn is returned by Table.Column for names not present in the table.
	ErrUnknownColumn = errors.New("unknown column")
)

// InputError reports a file that cannot be turned into a Table. It is terminal for the
// current analysis: callers should surface it and stop, never retry.
type InputError struct {
	Path   string
	Reason error
	Err    error
}

func (e *InputError) Error() string {
	if e == nil {
		return "invalid input"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Reason)
}

// Unwrap exposes both the reason sentinel and the underlying cause to errors.Is/As.
func (e *InputError) Unwrap() []error {
	var errs []error
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func inputErr(path string, reason, err error) *InputError {
	return &InputError{Path: path, Reason: reason, Err: err}
}
