package domain

import (
	"context"
	"io"
)

// Contacts is the upstream contact list surface the workflow drives
type Contacts interface {
	// Import adds batch as transient contacts; the candidate Index is sent as client id
	Import(ctx context.Context, batch []Candidate) (ImportOutcome, error)
	// Delete removes previously imported contacts
	Delete(ctx context.Context, refs []ContactRef) error
}

// Gate serializes use of the single upstream session.
// fn runs with a context that is not cancelled by the caller going away
type Gate interface {
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
}

// ServicePort defines the existence check service contract
type ServicePort interface {
	Check(ctx context.Context, candidates []Candidate) Report
	CheckFile(ctx context.Context, r io.Reader) Report
	CheckOne(ctx context.Context, raw string) Report
	CheckList(ctx context.Context, raws []string) Report
}
