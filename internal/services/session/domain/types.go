// Package domain holds the operator login types and ports
package domain

import (
	"time"

	perr "tgcheck/internal/platform/errors"
)

// Operator facing prompts
const (
	PromptEnterCode = "Please check your Telegram app and enter the code"
	PromptCodeSent  = "A code was already sent, check your Telegram app and enter it"
	PromptSignedIn  = "Signed in"
)

// ErrNotSignedIn is returned when a check is attempted before sign in
var ErrNotSignedIn = perr.New(perr.ErrorCodeUnauthorized, "telegram session is not signed in")

// Status is a snapshot of the single operator session
type Status struct {
	Connected     bool      `json:"connected" example:"true"`
	Authorized    bool      `json:"authorized" example:"false"`
	CodeRequested bool      `json:"code_requested" example:"true"`
	CodeSentAt    time.Time `json:"code_sent_at,omitzero"`
	Phone         string    `json:"phone" example:"+15*******67"`
}

// Login is the outcome of a login step with an operator prompt
type Login struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty" example:"Please check your Telegram app and enter the code"`
}

// VerifyInput is the sign in payload
type VerifyInput struct {
	Code string `json:"code" form:"code" validate:"required,max=16" example:"12345"`
}
