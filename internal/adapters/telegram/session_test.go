package telegram

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	perr "tgcheck/internal/platform/errors"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

type fakeRunner struct {
	failWith error
}

func (r *fakeRunner) Run(ctx context.Context, f func(ctx context.Context) error) error {
	if r.failWith != nil {
		return r.failWith
	}
	return f(ctx)
}

type fakeAuth struct {
	mu         sync.Mutex
	authorized bool
	sendCalls  int
	sendErr    error
	signInErr  error
	passErr    error
	gotCode    string
	gotHash    string
	gotPass    string
}

func (a *fakeAuth) Status(context.Context) (*auth.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return &auth.Status{Authorized: a.authorized}, nil
}

func (a *fakeAuth) SendCode(context.Context, string, auth.SendCodeOptions) (tg.AuthSentCodeClass, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sendCalls++
	if a.sendErr != nil {
		return nil, a.sendErr
	}
	return &tg.AuthSentCode{PhoneCodeHash: "hash-1"}, nil
}

func (a *fakeAuth) SignIn(_ context.Context, _, code, hash string) (*tg.AuthAuthorization, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gotCode, a.gotHash = code, hash
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	a.authorized = true
	return &tg.AuthAuthorization{}, nil
}

func (a *fakeAuth) Password(_ context.Context, pw string) (*tg.AuthAuthorization, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gotPass = pw
	if a.passErr != nil {
		return nil, a.passErr
	}
	a.authorized = true
	return &tg.AuthAuthorization{}, nil
}

func connected(t *testing.T, a *fakeAuth, opts Options) *Session {
	t.Helper()
	if opts.Phone == "" {
		opts.Phone = "+15551234567"
	}
	s := newSession(opts, &fakeRunner{}, a, &fakeContactsAPI{})
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Disconnect(context.Background()) })
	return s
}

func TestConnect_AndDisconnectTwice(t *testing.T) {
	t.Parallel()
	a := &fakeAuth{authorized: true}
	s := newSession(Options{Phone: "+15551234567"}, &fakeRunner{}, a, &fakeContactsAPI{})

	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	ok, err := s.IsAuthorized(context.Background())
	if err != nil || !ok {
		t.Fatalf("IsAuthorized = %v, %v", ok, err)
	}
	if err := s.Disconnect(context.Background()); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := s.Disconnect(context.Background()); err != nil {
		t.Fatalf("second disconnect: %v", err)
	}
	if s.Connected() {
		t.Fatalf("still connected after disconnect")
	}
}

func TestConnect_FailureIsUnavailable(t *testing.T) {
	t.Parallel()
	s := newSession(Options{}, &fakeRunner{failWith: errors.New("dial tcp: no such host")}, &fakeAuth{}, &fakeContactsAPI{})
	err := s.Connect(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestNotConnected(t *testing.T) {
	t.Parallel()
	s := newSession(Options{}, &fakeRunner{}, &fakeAuth{}, &fakeContactsAPI{})
	if _, err := s.IsAuthorized(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("IsAuthorized err = %v", err)
	}
	err := s.Exclusive(context.Background(), func(context.Context) error { return nil })
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Exclusive err = %v", err)
	}
	if err := s.Ping(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Ping err = %v", err)
	}
}

func TestRequestCode_Cooldown(t *testing.T) {
	t.Parallel()
	a := &fakeAuth{}
	s := connected(t, a, Options{CodeCooldown: time.Minute})
	clock := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	if err := s.RequestCode(context.Background()); err != nil {
		t.Fatalf("first request: %v", err)
	}
	clock = clock.Add(30 * time.Second)
	err := s.RequestCode(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("second request err = %v, want too many requests", err)
	}
	if a.sendCalls != 1 {
		t.Fatalf("upstream called %d times during cooldown", a.sendCalls)
	}
	clock = clock.Add(31 * time.Second)
	if err := s.RequestCode(context.Background()); err != nil {
		t.Fatalf("request after cooldown: %v", err)
	}
	st, _ := s.Status(context.Background())
	if !st.CodeRequested || st.Phone == "+15551234567" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestRequestCode_UpstreamErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want perr.ErrorCode
	}{
		{tgerr.New(420, "FLOOD_WAIT_30"), perr.ErrorCodeTooManyRequests},
		{tgerr.New(400, "PHONE_NUMBER_FLOOD"), perr.ErrorCodeTooManyRequests},
		{tgerr.New(400, "PHONE_NUMBER_BANNED"), perr.ErrorCodeForbidden},
	}
	for _, tc := range cases {
		s := connected(t, &fakeAuth{sendErr: tc.err}, Options{})
		if err := s.RequestCode(context.Background()); !perr.IsCode(err, tc.want) {
			t.Fatalf("%v -> %v, want %v", tc.err, perr.CodeOf(err), tc.want)
		}
	}
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("no pending code", func(t *testing.T) {
		s := connected(t, &fakeAuth{}, Options{})
		if err := s.SignIn(context.Background(), "12345"); !perr.IsCode(err, perr.ErrorCodeTimeout) {
			t.Fatalf("err = %v, want timeout", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		a := &fakeAuth{}
		s := connected(t, a, Options{})
		if err := s.RequestCode(context.Background()); err != nil {
			t.Fatalf("request code: %v", err)
		}
		if err := s.SignIn(context.Background(), " 12345 "); err != nil {
			t.Fatalf("sign in: %v", err)
		}
		if a.gotCode != "12345" || a.gotHash != "hash-1" {
			t.Fatalf("sign in args code=%q hash=%q", a.gotCode, a.gotHash)
		}
		st, _ := s.Status(context.Background())
		if !st.Authorized || st.CodeRequested {
			t.Fatalf("status after sign in: %+v", st)
		}
	})

	t.Run("invalid code", func(t *testing.T) {
		s := connected(t, &fakeAuth{signInErr: tgerr.New(400, "PHONE_CODE_INVALID")}, Options{})
		_ = s.RequestCode(context.Background())
		if err := s.SignIn(context.Background(), "1"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
			t.Fatalf("err = %v, want unauthorized", err)
		}
	})

	t.Run("expired code clears pending", func(t *testing.T) {
		s := connected(t, &fakeAuth{signInErr: tgerr.New(400, "PHONE_CODE_EXPIRED")}, Options{})
		_ = s.RequestCode(context.Background())
		if err := s.SignIn(context.Background(), "1"); !perr.IsCode(err, perr.ErrorCodeTimeout) {
			t.Fatalf("err = %v, want timeout", err)
		}
		st, _ := s.Status(context.Background())
		if st.CodeRequested {
			t.Fatalf("expired code still pending")
		}
	})

	t.Run("two step with password", func(t *testing.T) {
		a := &fakeAuth{signInErr: auth.ErrPasswordAuthNeeded}
		s := connected(t, a, Options{Password: "hunter2"})
		_ = s.RequestCode(context.Background())
		if err := s.SignIn(context.Background(), "1"); err != nil {
			t.Fatalf("sign in: %v", err)
		}
		if a.gotPass != "hunter2" {
			t.Fatalf("password not used")
		}
	})

	t.Run("two step without password", func(t *testing.T) {
		s := connected(t, &fakeAuth{signInErr: auth.ErrPasswordAuthNeeded}, Options{})
		_ = s.RequestCode(context.Background())
		if err := s.SignIn(context.Background(), "1"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
			t.Fatalf("err = %v, want unauthorized", err)
		}
	})
}

func TestExclusive_Serializes(t *testing.T) {
	t.Parallel()
	s := connected(t, &fakeAuth{}, Options{})

	var inside, peak atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Exclusive(context.Background(), func(context.Context) error {
				n := inside.Add(1)
				if n > peak.Load() {
					peak.Store(n)
				}
				time.Sleep(2 * time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
	if peak.Load() != 1 {
		t.Fatalf("peak concurrency = %d, want 1", peak.Load())
	}
}

func TestExclusive_SurvivesCallerCancel(t *testing.T) {
	t.Parallel()
	s := connected(t, &fakeAuth{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Exclusive(ctx, func(run context.Context) error {
		cancel()
		if run.Err() != nil {
			return errors.New("run context cancelled with the caller")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("exclusive: %v", err)
	}
}

func TestExclusive_WaitHonorsContext(t *testing.T) {
	t.Parallel()
	s := connected(t, &fakeAuth{}, Options{})
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = s.Exclusive(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := s.Exclusive(ctx, func(context.Context) error { return nil })
	close(release)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable while busy", err)
	}
}

func TestDisconnect_InterruptsRunningWork(t *testing.T) {
	t.Parallel()
	s := newSession(Options{}, &fakeRunner{}, &fakeAuth{}, &fakeContactsAPI{})
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	started := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		result <- s.Exclusive(context.Background(), func(run context.Context) error {
			close(started)
			<-run.Done()
			return run.Err()
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Disconnect(ctx); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Fatalf("exclusive err = %v, want cancelled", err)
	}
}

func TestDisconnect_QueuedWorkDoesNotStart(t *testing.T) {
	t.Parallel()
	s := newSession(Options{}, &fakeRunner{}, &fakeAuth{}, &fakeContactsAPI{})
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	started := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		first <- s.Exclusive(context.Background(), func(run context.Context) error {
			close(started)
			<-run.Done()
			return nil
		})
	}()
	<-started

	var ran atomic.Bool
	queued := make(chan error, 1)
	go func() {
		queued <- s.Exclusive(context.Background(), func(context.Context) error {
			ran.Store(true)
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Disconnect(ctx); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := <-first; err != nil {
		t.Fatalf("running work: %v", err)
	}
	if err := <-queued; !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("queued err = %v, want unavailable", err)
	}
	if ran.Load() {
		t.Fatal("queued work started after disconnect")
	}
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()
	if got := MaskPhone("+15551234567"); got != "+15*******67" {
		t.Fatalf("MaskPhone = %q", got)
	}
	if got := MaskPhone("+123"); got != "+123" {
		t.Fatalf("short phones stay as is, got %q", got)
	}
}
