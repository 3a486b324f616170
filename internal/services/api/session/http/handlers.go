// Package http exposes the operator login over JSON
package http

import (
	stdhttp "net/http"

	"tgcheck/internal/modkit/httpkit"
	sessdom "tgcheck/internal/services/session/domain"
)

type handlers struct{ login sessdom.ServicePort }

// Register mounts the session endpoints
func Register(r httpkit.Router, login sessdom.ServicePort) {
	h := &handlers{login: login}

	httpkit.Get(r, "/", h.status)
	httpkit.Post(r, "/code", h.code)
	httpkit.PostJSON[sessdom.VerifyInput](r, "/verify", h.verify)
}

// swagger:route GET /session Session sessionStatus
// @Summary Operator session status
// @Tags Session
// @Produce json
// @Success 200 {object} sessdom.Status "ok"
// @Router /session [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.login.Status(r.Context())
}

// swagger:route POST /session/code Session sessionCode
// @Summary Send a login code to the operator's Telegram app
// @Tags Session
// @Produce json
// @Success 200 {object} sessdom.Login "ok"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /session/code [post]
func (h *handlers) code(r *stdhttp.Request) (any, error) {
	return h.login.RequestCode(r.Context())
}

// swagger:route POST /session/verify Session sessionVerify
// @Summary Sign in with the received code
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body sessdom.VerifyInput true "Code"
// @Success 200 {object} sessdom.Login "ok"
// @Failure 401 {object} httpkit.Envelope "wrong code"
// @Failure 408 {object} httpkit.Envelope "code expired"
// @Router /session/verify [post]
func (h *handlers) verify(r *stdhttp.Request, in sessdom.VerifyInput) (any, error) {
	return h.login.Verify(r.Context(), in.Code)
}
