// Package apperror defines the tagged error type shared by the service and
// the single place that turns it into an HTTP status and response body.
package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind tags an Error with its failure category
type Kind int

// Failure categories
const (
	Unclassified Kind = iota
	Validation
	DuplicateIdentifier
	InvalidCredentials
	AccountBanned
	AccountPending
	NotAuthenticated
	TokenExpired
	TokenInvalid
	Forbidden
	NotFound
)

type kindInfo struct {
	name    string
	status  int
	message string
}

var kinds = map[Kind]kindInfo{
	Unclassified:        {"unclassified", http.StatusInternalServerError, "Something went wrong on our side. Please try again later."},
	Validation:          {"validation", http.StatusBadRequest, "Invalid data provided. One or more fields failed validation."},
	DuplicateIdentifier: {"duplicate_identifier", http.StatusBadRequest, "Email is already registered"},
	InvalidCredentials:  {"invalid_credentials", http.StatusUnauthorized, "Invalid email or password. Please try again."},
	AccountBanned:       {"account_banned", http.StatusForbidden, "Your account is banned."},
	AccountPending:      {"account_pending", http.StatusForbidden, "Your account is pending approval."},
	NotAuthenticated:    {"not_authenticated", http.StatusUnauthorized, "Please login to access this resource"},
	TokenExpired:        {"token_expired", http.StatusUnauthorized, "Your session has expired. Please login again."},
	TokenInvalid:        {"token_invalid", http.StatusUnauthorized, "Authentication failed. Invalid or malformed token."},
	Forbidden:           {"forbidden", http.StatusForbidden, "You are not allowed to perform this action"},
	NotFound:            {"not_found", http.StatusNotFound, "Resource not found"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return kinds[Unclassified].name
}

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	if info, ok := kinds[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Message returns the default client-facing message for the kind
func (k Kind) Message() string {
	if info, ok := kinds[k]; ok {
		return info.message
	}
	return kinds[Unclassified].message
}

// FieldError is a single failed input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the service's error type. Message is what the client sees,
// Err is the internal cause and is never sent out.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Message()
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of the given kind with the kind's default message
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Newf returns an Error of the given kind with a custom client message
func Newf(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an internal cause to a new Error of the given kind
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Invalid returns a Validation error carrying field-level detail
func Invalid(fields []FieldError) *Error {
	return &Error{Kind: Validation, Fields: fields}
}

// KindOf returns the Kind of the first Error in err's chain, or Unclassified
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unclassified
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Response is the uniform error body
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Translate maps any error to a status code and the body clients receive.
// Unclassified errors always get the generic message.
func Translate(err error) (int, Response) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == Unclassified {
		return http.StatusInternalServerError, Response{Message: Unclassified.Message()}
	}

	msg := strings.TrimSpace(appErr.Message)
	if msg == "" {
		msg = appErr.Kind.Message()
	}
	return appErr.Kind.Status(), Response{Message: msg, Errors: appErr.Fields}
}
