// Package errs defines the closed set of failures returned by ledger operations.
package errs

import (
	"errors"
	"fmt"
)

// Kind tags an Error with one of the four recoverable failure classes.
type Kind int

const (
	// KindInvalidInput marks malformed or out-of-range caller input.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks a reference to a missing account, category or transaction.
	KindNotFound
	// KindAlreadyExists marks a collision on a unique name.
	KindAlreadyExists
	// KindCategoryInUse marks deletion of a category still referenced by transactions.
	KindCategoryInUse
)

// Common sentinel errors for cross-layer signaling. Every *Error unwraps to one of them.
var (
	ErrInvalidInput  = errors.New("invalid_input")
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyExists = errors.New("already_exists")
	ErrCategoryInUse = errors.New("category_in_use")
)

// String returns the wire code for the kind.
func (k Kind) String() string {
	if s := sentinel(k); s != nil {
		return s.Error()
	}
	return "unknown"
}

// Error is a ledger failure carrying its kind and a human readable message.
// Count is only meaningful for KindCategoryInUse.
type Error struct {
	Kind  Kind
	Msg   string
	Count int
}

func (e *Error) Error() string { return e.Msg }

// Unwrap lets errors.Is match the kind sentinel.
func (e *Error) Unwrap() error { return sentinel(e.Kind) }

func sentinel(k Kind) error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindAlreadyExists:
		return ErrAlreadyExists
	case KindCategoryInUse:
		return ErrCategoryInUse
	default:
		return nil
	}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) error {
	return &Error{Kind: KindAlreadyExists, Msg: fmt.Sprintf(format, args...)}
}

// CategoryInUse reports that count transactions still reference category.
func CategoryInUse(category string, count int) error {
	return &Error{
		Kind:  KindCategoryInUse,
		Msg:   fmt.Sprintf("Category '%s' is used by %d transaction(s).", category, count),
		Count: count,
	}
}

// KindOf extracts the kind of a ledger error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
