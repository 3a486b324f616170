package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/net/middleware"
)

// TokenFunc checks a bearer token and returns the caller name
type TokenFunc func(token string) (operator string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a token checker
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// StaticToken accepts one shared bearer token. A blank token returns nil, which leaves routes open
func StaticToken(token string) middleware.AuthPort {
	want := []byte(strings.TrimSpace(token))
	if len(want) == 0 {
		return nil
	}
	return NewPortFunc(func(got string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return "", perr.Unauthorizedf("token mismatch")
		}
		return "operator", nil
	})
}

// Parse reads "Bearer <token>" case-insensitively; every failure is Unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const scheme = "bearer"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(scheme):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	op, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return op, nil
}
