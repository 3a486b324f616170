// Package service drives the one time code login of the operator session
package service

import (
	"context"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	dom "tgcheck/internal/services/session/domain"
)

// Service implements domain.ServicePort
type Service struct {
	up dom.Upstream
}

// New constructs the login service
func New(up dom.Upstream) *Service {
	if up == nil {
		panic("session.Service requires a non nil Upstream")
	}
	return &Service{up: up}
}

// Status returns the current session snapshot
func (s *Service) Status(ctx context.Context) (dom.Status, error) {
	return s.up.Status(ctx)
}

// EnsureLogin is what the console does on every page view
func (s *Service) EnsureLogin(ctx context.Context) (dom.Login, error) {
	st, err := s.up.Status(ctx)
	if err != nil {
		return dom.Login{Status: st}, err
	}
	if st.Authorized {
		return dom.Login{Status: st}, nil
	}
	return s.RequestCode(ctx)
}

// RequestCode sends a login code. A pending code inside the cooldown is
// reported as a prompt, not an error
func (s *Service) RequestCode(ctx context.Context) (dom.Login, error) {
	err := s.up.RequestCode(ctx)
	st, serr := s.up.Status(ctx)
	if serr != nil {
		logger.C(ctx).Warn().Err(serr).Msg("session status after code request")
	}
	switch {
	case err == nil && st.Authorized:
		return dom.Login{Status: st, Message: dom.PromptSignedIn}, nil
	case err == nil:
		return dom.Login{Status: st, Message: dom.PromptEnterCode}, nil
	case perr.IsCode(err, perr.ErrorCodeTooManyRequests) && st.CodeRequested:
		return dom.Login{Status: st, Message: dom.PromptCodeSent}, nil
	}
	return dom.Login{Status: st}, err
}

// Verify signs in with the code the operator received
func (s *Service) Verify(ctx context.Context, code string) (dom.Login, error) {
	err := s.up.SignIn(ctx, code)
	st, serr := s.up.Status(ctx)
	if serr != nil {
		logger.C(ctx).Warn().Err(serr).Msg("session status after sign in")
	}
	if err != nil {
		return dom.Login{Status: st}, err
	}
	return dom.Login{Status: st, Message: dom.PromptSignedIn}, nil
}

// Require guards check runs
func (s *Service) Require(ctx context.Context) error {
	st, err := s.up.Status(ctx)
	if err != nil {
		return err
	}
	if !st.Authorized {
		return dom.ErrNotSignedIn
	}
	return nil
}
