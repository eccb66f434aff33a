// Package apperr defines the closed set of errors that our API can surface to clients,
// along with the boundary that renders them as JSON responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Kind identifies the category of an Error, which determines the HTTP status that's
// used to report it unless the Error carries a more specific status of its own
type Kind int

const (
	// KindValidation indicates that the client sent a malformed request
	KindValidation Kind = iota + 1
	// KindNotFound indicates that the request referenced something that doesn't exist
	KindNotFound
	// KindRemoteService indicates that the upstream image generation API failed
	KindRemoteService
	// KindInternal covers everything we didn't anticipate
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFoundError"
	case KindRemoteService:
		return "RemoteServiceError"
	case KindInternal:
		return "GenericServerError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultStatus returns the HTTP status code used for errors of this kind
func (k Kind) DefaultStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRemoteService:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Error is an error that's constructed at the point of failure and propagated,
// unmodified, up to the HTTP boundary
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Context map[string]any

	// trace records the call stack at the point the Error was constructed
	trace error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause of an internal error, if any
func (e *Error) Unwrap() error {
	return errors.Unwrap(e.trace)
}

// Stack returns a human-readable stack trace captured when the error was constructed
func (e *Error) Stack() string {
	if e.trace == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.trace)
}

func newError(kind Kind, message string, status int, context map[string]any) *Error {
	if status == 0 {
		status = kind.DefaultStatus()
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Status:  status,
		Context: context,
		trace:   pkgerrors.New(message),
	}
}

// Validation returns an error indicating that a field in the request was invalid. value
// is the offending value as received, or nil if the field was absent.
func Validation(message string, field string, value any) *Error {
	context := map[string]any{"field": field}
	if value != nil {
		context["value"] = value
	}
	return newError(KindValidation, message, 0, context)
}

// NotFound returns an error indicating that the named resource does not exist
func NotFound(resource string, identifier string) *Error {
	message := fmt.Sprintf("%s not found", resource)
	context := map[string]any{"resource": resource}
	if identifier != "" {
		message = fmt.Sprintf("%s with identifier '%s' not found", resource, identifier)
		context["identifier"] = identifier
	}
	return newError(KindNotFound, message, 0, context)
}

// RemoteService returns an error indicating that a call to the upstream image
// generation API failed. If status is 0, the error is reported as a 502. If the
// upstream API gave us an error message or response body, it should be supplied as
// upstreamBody so that it can be surfaced to the client.
func RemoteService(message string, status int, upstreamBody string, context map[string]any) *Error {
	merged := make(map[string]any, len(context)+1)
	for k, v := range context {
		merged[k] = v
	}
	if upstreamBody != "" {
		merged["originalError"] = upstreamBody
	}
	if len(merged) == 0 {
		merged = nil
	}
	return newError(KindRemoteService, message, status, merged)
}

// Internal returns a generic server error, wrapping the given cause
func Internal(message string, cause error) *Error {
	e := newError(KindInternal, message, 0, nil)
	if cause != nil {
		e.trace = pkgerrors.WithStack(cause)
	}
	return e
}

// As resolves the *Error carried by err. Errors that did not originate as an *Error are
// promoted to an internal error that preserves the original message.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err.Error(), err)
}
