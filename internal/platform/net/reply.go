package net

import (
	"net/http"

	perr "tgcheck/internal/platform/errors"
)

// Wire is the JSON envelope every transport writes
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// ErrorWire maps err to its status and an envelope carrying only the public message
func ErrorWire(err error, reqID string) (int, Wire) {
	status := perr.HTTPStatus(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       perr.CodeOf(err),
		Error:      perr.Public(err),
		RequestID:  reqID,
	}
}

// DataWire wraps data in a success envelope
func DataWire(status int, data any, reqID string) Wire {
	return Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}
