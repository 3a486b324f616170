// Package telegram adapts the gotd MTProto client to the operator session and
// contact list ports used by the check workflow
package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	"tgcheck/internal/platform/metrics"

	gotd "github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// runner is the lifecycle surface of the MTProto client
type runner interface {
	Run(ctx context.Context, f func(ctx context.Context) error) error
}

// authClient is the login surface of the MTProto client
type authClient interface {
	Status(ctx context.Context) (*auth.Status, error)
	SendCode(ctx context.Context, phone string, options auth.SendCodeOptions) (tg.AuthSentCodeClass, error)
	SignIn(ctx context.Context, phone, code, codeHash string) (*tg.AuthAuthorization, error)
	Password(ctx context.Context, password string) (*tg.AuthAuthorization, error)
}

// Status is a snapshot of the operator session
type Status struct {
	Connected     bool      `json:"connected" example:"true"`
	Authorized    bool      `json:"authorized" example:"false"`
	CodeRequested bool      `json:"code_requested" example:"true"`
	CodeSentAt    time.Time `json:"code_sent_at,omitzero"`
	Phone         string    `json:"phone" example:"+15*******67"`
}

// Session owns the single operator account connection for the process lifetime
type Session struct {
	opts Options
	log  logger.Logger
	run  runner
	auth authClient
	api  contactsAPI
	now  func() time.Time

	// slot is the one-owner gate for contact traffic
	slot chan struct{}

	// authMu serializes code requests and sign in
	authMu sync.Mutex

	mu         sync.Mutex
	quit       context.Context
	interrupt  context.CancelFunc
	stop       context.CancelFunc
	done       chan struct{}
	connected  bool
	authorized bool
	codeHash   string
	codeSentAt time.Time
}

// New builds a Session over a gotd client. storage nil means a session file at opts.SessionFile
func New(opts Options, storage gotd.Storage) *Session {
	opts = opts.withDefaults()
	if storage == nil {
		storage = &gotd.FileStorage{Path: opts.SessionFile}
	}
	client := telegram.NewClient(opts.AppID, opts.AppHash, telegram.Options{
		SessionStorage: storage,
		Logger:         newZap(opts.LogLevel),
	})
	return newSession(opts, client, client.Auth(), client.API())
}

func newSession(opts Options, r runner, a authClient, api contactsAPI) *Session {
	return &Session{
		opts: opts.withDefaults(),
		log:  *logger.Named("telegram"),
		run:  r,
		auth: a,
		api:  api,
		now:  time.Now,
		slot: make(chan struct{}, 1),
	}
}

// Connect starts the client and blocks until it is ready or ctx expires
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return nil
	}
	life, stop := context.WithCancel(context.WithoutCancel(ctx))
	quit, interrupt := context.WithCancel(life)
	ready := make(chan struct{})
	done := make(chan struct{})
	s.quit, s.interrupt, s.stop, s.done = quit, interrupt, stop, done
	s.mu.Unlock()

	var runErr error
	go func() {
		defer close(done)
		runErr = s.run.Run(life, func(ctx context.Context) error {
			close(ready)
			<-ctx.Done()
			return nil
		})
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		if runErr != nil && life.Err() == nil {
			s.log.Error().Err(runErr).Msg("telegram client stopped")
		}
	}()

	wait, cancel := context.WithTimeout(ctx, s.opts.ConnectTimeout)
	defer cancel()

	select {
	case <-ready:
	case <-done:
		metrics.SessionEvents.WithLabelValues("connect", "error").Inc()
		if runErr == nil {
			runErr = errors.New("client exited before ready")
		}
		return perr.Wrap(runErr, perr.ErrorCodeUnavailable, "could not connect to telegram")
	case <-wait.Done():
		stop()
		<-done
		metrics.SessionEvents.WithLabelValues("connect", "error").Inc()
		return perr.Wrap(wait.Err(), perr.ErrorCodeUnavailable, "could not connect to telegram")
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	metrics.SessionEvents.WithLabelValues("connect", "ok").Inc()

	ok, err := s.IsAuthorized(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read authorization status")
	}
	s.log.Info().Bool("authorized", ok).Str("phone", MaskPhone(s.opts.Phone)).Msg("telegram connected")
	return nil
}

// IsAuthorized asks upstream whether the stored session is signed in
func (s *Session) IsAuthorized(ctx context.Context) (bool, error) {
	if err := s.ensureConnected(); err != nil {
		return false, err
	}
	st, err := s.auth.Status(ctx)
	if err != nil {
		return false, mapError(err, "auth.status")
	}
	s.mu.Lock()
	s.authorized = st.Authorized
	s.mu.Unlock()
	return st.Authorized, nil
}

// Status returns a fresh snapshot, refreshing authorization when connected
func (s *Session) Status(ctx context.Context) (Status, error) {
	var err error
	if s.Connected() {
		_, err = s.IsAuthorized(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Connected:     s.connected,
		Authorized:    s.authorized,
		CodeRequested: s.codeHash != "",
		CodeSentAt:    s.codeSentAt,
		Phone:         MaskPhone(s.opts.Phone),
	}, err
}

// RequestCode asks upstream to send a login code to the operator's app.
// A second request inside the cooldown fails without reaching upstream
func (s *Session) RequestCode(ctx context.Context) error {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	if err := s.ensureConnected(); err != nil {
		return err
	}
	s.mu.Lock()
	sentAt := s.codeSentAt
	s.mu.Unlock()
	if !sentAt.IsZero() {
		if left := s.opts.CodeCooldown - s.now().Sub(sentAt); left > 0 {
			metrics.SessionEvents.WithLabelValues("send_code", "cooldown").Inc()
			return perr.TooManyRequestsf("login code already sent, retry in %s", left.Round(time.Second))
		}
	}

	sent, err := s.auth.SendCode(ctx, s.opts.Phone, auth.SendCodeOptions{})
	if err != nil {
		metrics.SessionEvents.WithLabelValues("send_code", "error").Inc()
		return mapError(err, "auth.sendCode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch v := sent.(type) {
	case *tg.AuthSentCode:
		s.codeHash = v.PhoneCodeHash
		s.codeSentAt = s.now()
	case *tg.AuthSentCodeSuccess:
		s.authorized = true
	default:
		return perr.Upstreamf("unexpected sent code type %T", sent)
	}
	metrics.SessionEvents.WithLabelValues("send_code", "ok").Inc()
	s.log.Info().Str("phone", MaskPhone(s.opts.Phone)).Msg("login code sent")
	return nil
}

// SignIn completes login with the code the operator received
func (s *Session) SignIn(ctx context.Context, code string) error {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	if err := s.ensureConnected(); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return perr.Unauthorizedf("login code is empty")
	}
	s.mu.Lock()
	hash := s.codeHash
	s.mu.Unlock()
	if hash == "" {
		return perr.Timeoutf("no login code is pending")
	}

	_, err := s.auth.SignIn(ctx, s.opts.Phone, code, hash)
	if errors.Is(err, auth.ErrPasswordAuthNeeded) {
		if s.opts.Password == "" {
			metrics.SessionEvents.WithLabelValues("sign_in", "error").Inc()
			return perr.Wrap(err, perr.ErrorCodeUnauthorized, "two-step verification password is not configured")
		}
		_, err = s.auth.Password(ctx, s.opts.Password)
	}
	if err != nil {
		mapped := mapError(err, "auth.signIn")
		if perr.IsCode(mapped, perr.ErrorCodeTimeout) {
			s.clearCode()
		}
		metrics.SessionEvents.WithLabelValues("sign_in", "error").Inc()
		return mapped
	}

	s.mu.Lock()
	s.authorized = true
	s.mu.Unlock()
	s.clearCode()
	metrics.SessionEvents.WithLabelValues("sign_in", "ok").Inc()
	s.log.Info().Str("phone", MaskPhone(s.opts.Phone)).Msg("signed in")
	return nil
}

// Exclusive runs fn while holding the session gate. Waiting honors ctx;
// fn gets a context that survives the caller and ends only on Disconnect
func (s *Session) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "session busy")
	}
	defer func() { <-s.slot }()

	if err := s.ensureConnected(); err != nil {
		return err
	}
	s.mu.Lock()
	quit := s.quit
	s.mu.Unlock()
	if quit.Err() != nil {
		return perr.Unavailablef("telegram session is disconnecting")
	}

	run, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	unhook := context.AfterFunc(quit, cancel)
	defer unhook()
	return fn(run)
}

// Disconnect interrupts batch delays, waits for the running batch to clean up,
// then stops the client. Safe to call twice
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	stop, interrupt, done := s.stop, s.interrupt, s.done
	s.stop, s.interrupt = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return nil
	}

	interrupt()
	select {
	case s.slot <- struct{}{}:
		<-s.slot
	case <-ctx.Done():
		s.log.Warn().Msg("disconnect while a check is still running")
	}
	stop()

	select {
	case <-done:
	case <-ctx.Done():
		return perr.Wrap(ctx.Err(), perr.ErrorCodeTimeout, "telegram client did not stop")
	}
	metrics.SessionEvents.WithLabelValues("disconnect", "ok").Inc()
	s.log.Info().Msg("telegram disconnected")
	return nil
}

// Connected reports whether the client is running
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Phone returns the configured operator phone
func (s *Session) Phone() string { return s.opts.Phone }

// Contacts returns the contact list adapter bound to this session
func (s *Session) Contacts() *Contacts { return &Contacts{api: s.api, log: s.log} }

// Ping reports readiness; fails with Unavailable while the client is stopped
func (s *Session) Ping(context.Context) error { return s.ensureConnected() }

func (s *Session) ensureConnected() error {
	if !s.Connected() {
		return perr.Unavailablef("telegram session is not connected")
	}
	return nil
}

func (s *Session) clearCode() {
	s.mu.Lock()
	s.codeHash = ""
	s.codeSentAt = time.Time{}
	s.mu.Unlock()
}
