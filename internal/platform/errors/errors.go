// Package errors provides the project error type: a stable code, a developer message
// and an optional wrapped cause. Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error. Values are part of the
// JSON contract so new codes are only ever appended
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is for transient failures where a retry may succeed (connection loss, failed cleanup)
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests is for rate limiting, including upstream flood waits
	ErrorCodeTooManyRequests

	// ErrorCodeTimeout is for expired verification codes and other deadlines
	ErrorCodeTimeout

	// ErrorCodeUnauthorized is for auth failures (wrong code, session not signed in)
	ErrorCodeUnauthorized

	// ErrorCodeForbidden is for banned numbers
	ErrorCodeForbidden

	// ErrorCodeInvalidArgument is for bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for input that failed field validation
	ErrorCodeValidation

	// ErrorCodeJSON is for undecodable request bodies
	ErrorCodeJSON

	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound

	// ErrorCodeInvalidPhone is for phone numbers the upstream refuses as malformed
	ErrorCodeInvalidPhone

	// ErrorCodeConfig is for missing or invalid process configuration
	ErrorCodeConfig

	// ErrorCodeUpstream is for unclassified upstream API failures
	ErrorCodeUpstream

	// ErrorCodeDB is for session storage failures
	ErrorCodeDB
)

type codeInfo struct {
	status int
	public string
}

const somethingWrong = "Something went wrong, please try again"

// codes holds the HTTP status and the only operator facing text for each code.
// Upstream error text never reaches a response or a rendered page
var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:         {http.StatusInternalServerError, somethingWrong},
	ErrorCodePanic:           {http.StatusInternalServerError, somethingWrong},
	ErrorCodeUnavailable:     {http.StatusServiceUnavailable, "Telegram is unreachable right now, please try again later"},
	ErrorCodeTooManyRequests: {http.StatusTooManyRequests, "Telegram rate limit reached, please wait before retrying"},
	ErrorCodeTimeout:         {http.StatusRequestTimeout, "The verification code expired, please request a new one"},
	ErrorCodeUnauthorized:    {http.StatusUnauthorized, "Authorization failed, check the code and try again"},
	ErrorCodeForbidden:       {http.StatusForbidden, "This phone number is banned by Telegram"},
	ErrorCodeInvalidArgument: {http.StatusUnprocessableEntity, "The request could not be processed"},
	ErrorCodeValidation:      {http.StatusBadRequest, "The submitted input is invalid"},
	ErrorCodeJSON:            {http.StatusBadRequest, "The request body is not valid JSON"},
	ErrorCodeNotFound:        {http.StatusNotFound, "Not found"},
	ErrorCodeInvalidPhone:    {http.StatusBadRequest, "The phone number format is invalid"},
	ErrorCodeConfig:          {http.StatusInternalServerError, "The service is misconfigured"},
	ErrorCodeUpstream:        {http.StatusInternalServerError, "Telegram returned an unexpected error"},
	ErrorCodeDB:              {http.StatusInternalServerError, "Session storage is unavailable"},
}

func info(c ErrorCode) codeInfo {
	if ci, ok := codes[c]; ok {
		return ci
	}
	return codes[ErrorCodeUnknown]
}

// HTTPStatusCode maps a code to its HTTP status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int { return info(c).status }

// PublicMessage returns the stable operator facing message for a code
func PublicMessage(c ErrorCode) string { return info(c).public }

// Public returns the operator facing message for err. Input errors keep their
// own message since it is built from our field tags, never from upstream text
func Public(err error) string {
	if err == nil {
		return ""
	}
	e, ok := As(err)
	if !ok {
		return PublicMessage(ErrorCodeUnknown)
	}
	switch e.code {
	case ErrorCodeValidation, ErrorCodeJSON, ErrorCodeNotFound:
		if e.msg != "" {
			return e.msg
		}
	}
	return PublicMessage(e.code)
}

// Error carries a code, a developer message and an optional cause.
// field names the offending input; op names the upstream call that failed
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Error renders "op: msg: cause" with empty parts left out
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.msg
	if e.op != "" {
		s = e.op + ": " + s
	}
	if e.orig != nil {
		s = fmt.Sprintf("%s: %v", s, e.orig)
	}
	return s
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts the code from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// Retryable reports whether a later retry of the same operation may succeed.
// Nothing retries automatically; this only drives what operators are told
func Retryable(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests, ErrorCodeTimeout:
		return true
	}
	return false
}

// WithField returns a copy of err naming the offending field. Foreign errors pass through
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp returns a copy of err labelled with op. Foreign errors pass through
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error with code and msg around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// TooManyRequestsf returns a rate limit error
func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}

// Timeoutf returns a timeout error
func Timeoutf(format string, a ...any) error { return Newf(ErrorCodeTimeout, format, a...) }

// InvalidPhonef returns an invalid phone error
func InvalidPhonef(format string, a ...any) error { return Newf(ErrorCodeInvalidPhone, format, a...) }

// Configf returns a configuration error
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// Upstreamf returns an unclassified upstream error
func Upstreamf(format string, a ...any) error { return Newf(ErrorCodeUpstream, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
