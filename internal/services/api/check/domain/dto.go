// Package domain holds the JSON contract of the check endpoints
package domain

import (
	perr "tgcheck/internal/platform/errors"
	checkdom "tgcheck/internal/services/checker/domain"
)

// AccountInput is the single number request
// swagger:model
type AccountInput struct {
	Number string `json:"number" validate:"required,max=32,phone" example:"+15551234567"`
}

// AccountOutput is the single number answer
// swagger:model
type AccountOutput struct {
	Exists  bool   `json:"exists" example:"true"`
	Message string `json:"message" example:"Found"`
}

// BatchInput is a list of raw numbers, capped server side like an upload
// swagger:model
type BatchInput struct {
	Numbers []string `json:"numbers" validate:"required,min=1,max=1000,dive,max=32"`
}

// BatchOutput carries every result gathered before the run ended
// swagger:model
type BatchOutput struct {
	RunID   string                 `json:"run_id" example:"0b6f3c1e-8d0f-4a51-9d5a-5d0d1b1f0e2a"`
	State   string                 `json:"state" example:"completed"`
	Results []checkdom.CheckResult `json:"results"`
	Code    perr.ErrorCode         `json:"code,omitempty"`
	Error   string                 `json:"error,omitempty" example:"Telegram rate limit reached, please wait before retrying"`
	// Retryable is set when the same request may succeed later
	Retryable bool `json:"retryable,omitempty" example:"true"`
}
