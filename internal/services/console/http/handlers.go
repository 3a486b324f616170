// Package http serves the operator console pages
package http

import (
	"embed"
	"html/template"
	stdhttp "net/http"

	"tgcheck/internal/modkit/httpkit"
	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	phttp "tgcheck/internal/platform/net/http"
	"tgcheck/internal/platform/net/http/bind"
	checkdom "tgcheck/internal/services/checker/domain"
	sessdom "tgcheck/internal/services/session/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const page = "index.html"

// errSignInFirst is shown when a check is posted before the session is signed in
const errSignInFirst = "Sign in with the code from your Telegram app before checking numbers"

// Deps are the handler dependencies
type Deps struct {
	Login    sessdom.ServicePort
	Checker  checkdom.ServicePort
	MaxBytes int64
}

// SingleInput is the single number form
type SingleInput struct {
	Phone string `json:"phone" form:"phone" validate:"required,max=32,phone"`
}

type view struct {
	Status  sessdom.Status
	Message string
	Error   string
	Results []checkdom.CheckResult
	Run     string
}

type handlers struct{ deps Deps }

// Register mounts the console routes
func Register(r httpkit.Router, d Deps) {
	if d.MaxBytes <= 0 {
		d.MaxBytes = bind.DefaultFormBytes
	}
	h := &handlers{deps: d}

	r.Get("/", h.index)
	r.Post("/verify", h.verify)
	r.Post("/check-account", h.checkAccount)
	r.Post("/check-single", h.checkSingle)
}

// index shows the session and asks for a login code when not signed in
func (h *handlers) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	login, err := h.deps.Login.EnsureLogin(r.Context())
	h.render(w, r, view{Status: login.Status, Message: login.Message}, err)
}

func (h *handlers) verify(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseForm[sessdom.VerifyInput](r, h.deps.MaxBytes)
	if err != nil {
		h.render(w, r, view{Status: h.status(r)}, err)
		return
	}
	login, err := h.deps.Login.Verify(r.Context(), in.Code)
	h.render(w, r, view{Status: login.Status, Message: login.Message}, err)
}

func (h *handlers) checkAccount(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	v, ok := h.signedIn(w, r)
	if !ok {
		return
	}
	f, fh, err := bind.File(r, "file", h.deps.MaxBytes)
	if err != nil {
		h.render(w, r, v, err)
		return
	}
	defer func() { _ = f.Close() }()
	logger.C(r.Context()).Info().Str("file", fh.Filename).Int64("size", fh.Size).Msg("phone list uploaded")

	h.report(w, r, v, h.deps.Checker.CheckFile(r.Context(), f))
}

func (h *handlers) checkSingle(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	v, ok := h.signedIn(w, r)
	if !ok {
		return
	}
	in, err := bind.ParseForm[SingleInput](r, h.deps.MaxBytes)
	if err != nil {
		h.render(w, r, v, err)
		return
	}
	h.report(w, r, v, h.deps.Checker.CheckOne(r.Context(), in.Phone))
}

// signedIn renders the login prompt and reports false when checks are not allowed yet
func (h *handlers) signedIn(w stdhttp.ResponseWriter, r *stdhttp.Request) (view, bool) {
	st, err := h.deps.Login.Status(r.Context())
	v := view{Status: st}
	if err != nil {
		h.render(w, r, v, err)
		return v, false
	}
	if !st.Authorized {
		v.Error = errSignInFirst
		phttp.HTML(w, r, stdhttp.StatusUnauthorized, pages, page, v)
		return v, false
	}
	return v, true
}

func (h *handlers) report(w stdhttp.ResponseWriter, r *stdhttp.Request, v view, rep checkdom.Report) {
	v.Results = rep.Results
	v.Run = rep.RunID
	h.render(w, r, v, rep.Err)
}

func (h *handlers) status(r *stdhttp.Request) sessdom.Status {
	st, err := h.deps.Login.Status(r.Context())
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("session status")
	}
	return st
}

// render writes the page; err only ever reaches the page as its public message
func (h *handlers) render(w stdhttp.ResponseWriter, r *stdhttp.Request, v view, err error) {
	status := stdhttp.StatusOK
	if err != nil {
		status = perr.HTTPStatus(err)
		v.Error = perr.Public(err)
		logger.C(r.Context()).Warn().Err(err).Int("status", status).Msg("console request failed")
	}
	phttp.HTML(w, r, status, pages, page, v)
}
