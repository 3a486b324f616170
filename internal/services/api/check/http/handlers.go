// Package http provides the JSON check endpoints
package http

import (
	stdhttp "net/http"

	"tgcheck/internal/modkit/httpkit"
	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	phttp "tgcheck/internal/platform/net/http"
	"tgcheck/internal/platform/net/http/bind"
	"tgcheck/internal/services/api/check/domain"
	checkdom "tgcheck/internal/services/checker/domain"
	sessdom "tgcheck/internal/services/session/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Login   sessdom.ServicePort
	Checker checkdom.ServicePort
}

type handlers struct{ deps Deps }

// Register mounts the check endpoints
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	r.Post("/check-account", h.account)
	r.Post("/check-batch", h.batch)
}

// swagger:route POST /check-account Check checkAccount
// @Summary Check whether one phone number has a Telegram account
// @Tags Check
// @Accept json
// @Produce json
// @Param payload body domain.AccountInput true "Number"
// @Success 200 {object} domain.AccountOutput "ok"
// @Failure 400 {object} httpkit.Envelope "invalid number"
// @Failure 401 {object} httpkit.Envelope "not signed in"
// @Failure 403 {object} httpkit.Envelope "banned number"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /check-account [post]
func (h *handlers) account(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.AccountInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	if err := h.deps.Login.Require(r.Context()); err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	rep := h.deps.Checker.CheckOne(r.Context(), in.Number)
	if len(rep.Results) == 0 {
		if rep.Err == nil {
			rep.Err = perr.InvalidPhonef("no digits in number")
		}
		phttp.RespondError(w, r, rep.Err)
		return
	}
	if rep.Err != nil {
		// the number was classified before cleanup failed, the answer still stands
		logger.C(r.Context()).Warn().Err(rep.Err).Str("run_id", rep.RunID).Msg("check finished with error")
	}
	res := rep.Results[0]
	phttp.JSON(w, stdhttp.StatusOK, domain.AccountOutput{Exists: res.Exists, Message: res.Comment})
}

// swagger:route POST /check-batch Check checkBatch
// @Summary Check a list of phone numbers
// @Description Results gathered before an upstream error are returned with the error status
// @Tags Check
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Numbers"
// @Success 200 {object} domain.BatchOutput "ok"
// @Failure 429 {object} domain.BatchOutput "aborted, partial results"
// @Router /check-batch [post]
func (h *handlers) batch(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.BatchInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	if err := h.deps.Login.Require(r.Context()); err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	rep := h.deps.Checker.CheckList(r.Context(), in.Numbers)
	out := domain.BatchOutput{
		RunID:   rep.RunID,
		State:   string(rep.State),
		Results: rep.Results,
	}
	status := stdhttp.StatusOK
	if rep.Err != nil {
		status = perr.HTTPStatus(rep.Err)
		out.Code = perr.CodeOf(rep.Err)
		out.Error = perr.Public(rep.Err)
		out.Retryable = perr.Retryable(rep.Err)
	}
	phttp.JSON(w, status, out)
}
