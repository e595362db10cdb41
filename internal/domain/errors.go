package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindAuth
	KindNotFound
	KindExpired
	KindMismatch
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	case KindAuth:
		return "AUTH_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindExpired:
		return "EXPIRED"
	case KindMismatch:
		return "MISMATCH"
	default:
		return "SERVER_ERROR"
	}
}

// Error is the single error type the service layer hands to handlers.
// Message is safe to show to clients; Err is for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and message so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NewValidationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NewConflictError(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// NewServerError wraps an unexpected store or transport failure.
func NewServerError(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// KindOf reports the kind of err, treating anything unrecognised as a server error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindServer
}

const (
	MsgFieldsRequired     = "All fields are required"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgUsernameTaken      = "Username already exists"
	MsgEmailTaken         = "Email already exists"
	MsgAccountExists      = "Username or email already exists"
	MsgInvalidCredentials = "Invalid username or password"
	MsgInvalidEmail       = "Invalid email format"
	MsgInvalidDate        = "Invalid date format"
	MsgServerError        = "Server error"
)

var (
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: MsgInvalidCredentials}
	ErrUsernameTaken      = &Error{Kind: KindConflict, Message: MsgUsernameTaken}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: MsgEmailTaken}

	ErrOTPNotFound = &Error{Kind: KindNotFound, Message: "OTP expired or not found"}
	ErrOTPExpired  = &Error{Kind: KindExpired, Message: "OTP expired"}
	ErrOTPMismatch = &Error{Kind: KindMismatch, Message: "Invalid OTP"}

	// ErrDuplicate is returned by repositories when a unique index rejects a write.
	// Field names which one, when the store reports it.
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateKeyError carries the field that collided.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string { return "duplicate key on " + e.Field }
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicate }
