// Package domain holds the existence check types and the ports the workflow depends on
package domain

import (
	"time"

	"tgcheck/internal/core/phonelist"
)

// Candidate is a phone accepted from input; its Index is the upstream correlation id
type Candidate = phonelist.Candidate

// State is a step of one check run
type State string

// Check run states. Completed and AbortedOnError are terminal
const (
	StateIdle             State = "idle"
	StateParsingInput     State = "parsing_input"
	StateBatching         State = "batching"
	StateImportingBatch   State = "importing_batch"
	StateClassifyingBatch State = "classifying_batch"
	StateDeletingBatch    State = "deleting_batch"
	StateCompleted        State = "completed"
	StateAbortedOnError   State = "aborted_on_error"
)

// Terminal reports whether no further transitions follow s
func (s State) Terminal() bool { return s == StateCompleted || s == StateAbortedOnError }

// Result comments. The privacy comment is a best effort reading of upstream
// popular-contact hints, not a statement about the account's settings
const (
	CommentFound    = "Found"
	CommentNotFound = "Not found"
	CommentPrivacy  = "Not found or privacy restricted"
	CommentRetry    = "Retry later"
)

// CheckResult is the outcome for one submitted phone
type CheckResult struct {
	Phone   string `json:"phone" example:"+15551234567"`
	Exists  bool   `json:"exists" example:"true"`
	Comment string `json:"comment" example:"Found"`
}

// Report is everything one run produced. Results keep input order and only
// cover batches that finished; Err is set when the run aborted
type Report struct {
	RunID    string
	Results  []CheckResult
	State    State
	Batches  int
	Accepted int
	Elapsed  time.Duration
	Err      error
}

// ContactRef identifies an upstream user that was added to the contact list
type ContactRef struct {
	UserID     int64
	AccessHash int64
}

// ImportedUser is a user the upstream returned for an import call
type ImportedUser struct {
	Ref   ContactRef
	Phone string // digits only, as echoed upstream
}

// ImportOutcome is the upstream answer to one contact import call
type ImportOutcome struct {
	// Imported maps client id to the user that matched it
	Imported map[int64]ContactRef
	// Users are all users returned; every one of them is now a contact
	Users []ImportedUser
	// Popular maps client id to how many other users hold that phone as a contact
	Popular map[int64]int
	// Retry lists client ids the upstream refused to process in this call
	Retry []int64
}

// Refs returns every contact the import created, deduplicated by user id
func (o ImportOutcome) Refs() []ContactRef {
	seen := make(map[int64]struct{}, len(o.Users)+len(o.Imported))
	out := make([]ContactRef, 0, len(o.Users)+len(o.Imported))
	add := func(r ContactRef) {
		if r.UserID == 0 {
			return
		}
		if _, ok := seen[r.UserID]; ok {
			return
		}
		seen[r.UserID] = struct{}{}
		out = append(out, r)
	}
	for _, u := range o.Users {
		add(u.Ref)
	}
	for _, r := range o.Imported {
		add(r)
	}
	return out
}
