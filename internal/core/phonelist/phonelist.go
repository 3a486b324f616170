// Package phonelist turns operator input into an ordered, bounded and
// deduplicated list of phone candidates.
// Input is CSV text with one header row; the phone is the first field of each row
package phonelist

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	perr "tgcheck/internal/platform/errors"
)

// DefaultLimit bounds one upload when the caller passes limit <= 0
const DefaultLimit = 50

// Candidate is one phone number accepted from input.
// Index is its position in the accepted list and doubles as the upstream correlation id
type Candidate struct {
	Index int
	Raw   string
	Phone string
}

// Parse reads CSV from r and returns at most limit candidates in input order.
// Rows past the cap are not read; that is not an error.
// Header-only or empty input yields an empty, non-nil slice
func Parse(r io.Reader, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Candidate, 0, min(limit, 64))
	if r == nil {
		return out, nil
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	// header row
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		return nil, csvError(err)
	}

	seen := make(map[string]struct{}, limit)
	for len(out) < limit {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if len(rec) == 0 {
			continue
		}
		raw := strings.TrimSpace(rec[0])
		if raw == "" {
			continue
		}
		phone := Normalize(raw)
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		out = append(out, Candidate{Index: len(out), Raw: raw, Phone: phone})
	}
	return out, nil
}

// Single wraps one raw number as a one element candidate list
func Single(raw string) []Candidate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Candidate{}
	}
	return []Candidate{{Index: 0, Raw: raw, Phone: Normalize(raw)}}
}

// FromStrings builds candidates from an already split list, applying the same
// trim, dedupe and cap rules as Parse
func FromStrings(raws []string, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Candidate, 0, min(limit, len(raws)))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if len(out) >= limit {
			break
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		phone := Normalize(raw)
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}
		out = append(out, Candidate{Index: len(out), Raw: raw, Phone: phone})
	}
	return out
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrapf(err, perr.ErrorCodeValidation, "could not read phone list: line %d is malformed", pe.Line)
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "could not read phone list")
}
