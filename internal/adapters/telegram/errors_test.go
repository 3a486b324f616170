package telegram

import (
	"context"
	"errors"
	"testing"

	perr "tgcheck/internal/platform/errors"

	"github.com/gotd/td/tgerr"
)

func TestMapError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want perr.ErrorCode
	}{
		{"flood wait", tgerr.New(420, "FLOOD_WAIT_17"), perr.ErrorCodeTooManyRequests},
		{"phone flood", tgerr.New(400, "PHONE_NUMBER_FLOOD"), perr.ErrorCodeTooManyRequests},
		{"banned", tgerr.New(400, "PHONE_NUMBER_BANNED"), perr.ErrorCodeForbidden},
		{"invalid phone", tgerr.New(400, "PHONE_NUMBER_INVALID"), perr.ErrorCodeInvalidPhone},
		{"bad code", tgerr.New(400, "PHONE_CODE_INVALID"), perr.ErrorCodeUnauthorized},
		{"empty code", tgerr.New(400, "PHONE_CODE_EMPTY"), perr.ErrorCodeUnauthorized},
		{"expired", tgerr.New(400, "PHONE_CODE_EXPIRED"), perr.ErrorCodeTimeout},
		{"unregistered key", tgerr.New(401, "AUTH_KEY_UNREGISTERED"), perr.ErrorCodeUnauthorized},
		{"revoked", tgerr.New(401, "SESSION_REVOKED"), perr.ErrorCodeUnauthorized},
		{"other rpc", tgerr.New(400, "CONTACT_ID_INVALID"), perr.ErrorCodeUpstream},
		{"deadline", context.DeadlineExceeded, perr.ErrorCodeUnavailable},
		{"plain", errors.New("boom"), perr.ErrorCodeUpstream},
	}
	for _, tc := range cases {
		got := mapError(tc.err, "op")
		if !perr.IsCode(got, tc.want) {
			t.Fatalf("%s: code = %v, want %v", tc.name, perr.CodeOf(got), tc.want)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%s: cause lost", tc.name)
		}
		if perr.Public(got) == tc.err.Error() {
			t.Fatalf("%s: upstream text leaked into public message", tc.name)
		}
	}
	if mapError(nil, "op") != nil {
		t.Fatalf("nil must stay nil")
	}
	already := perr.New(perr.ErrorCodeForbidden, "x")
	if mapError(already, "op") != already {
		t.Fatalf("platform errors must pass through")
	}
}
