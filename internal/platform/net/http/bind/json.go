package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "tgcheck/internal/platform/errors"
)

// DefaultJSONBytes bounds JSON request bodies
const DefaultJSONBytes int64 = 1 << 20

// ParseJSON decodes exactly one JSON object into T and validates it.
// Unknown fields, empty bodies and trailing data are rejected
func ParseJSON[T any](r *http.Request, maxBytes ...int64) (T, error) {
	var zero, dst T
	limit := DefaultJSONBytes
	if len(maxBytes) > 0 && maxBytes[0] > 0 {
		limit = maxBytes[0]
	}
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return zero, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
