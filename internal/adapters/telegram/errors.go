package telegram

import (
	"context"
	"errors"
	"net"
	"strings"

	perr "tgcheck/internal/platform/errors"

	"github.com/gotd/td/tgerr"
)

// mapError converts an upstream RPC or transport error into the platform taxonomy.
// The upstream text is kept as the wrapped cause only
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	if d, ok := tgerr.AsFloodWait(err); ok {
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeTooManyRequests, "flood wait %s", d), op)
	}
	if rpc, ok := tgerr.As(err); ok {
		return perr.WithOp(perr.Wrapf(err, codeForRPC(rpc.Type), "telegram %s", rpc.Type), op)
	}
	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &nerr):
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "telegram unreachable"), op)
	case errors.Is(err, context.Canceled):
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "telegram call cancelled"), op)
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUpstream, "telegram call failed"), op)
}

func codeForRPC(typ string) perr.ErrorCode {
	switch typ {
	case "FLOOD_WAIT", "FLOOD_PREMIUM_WAIT", "PHONE_NUMBER_FLOOD", "PHONE_PASSWORD_FLOOD":
		return perr.ErrorCodeTooManyRequests
	case "PHONE_NUMBER_BANNED", "USER_DEACTIVATED_BAN":
		return perr.ErrorCodeForbidden
	case "PHONE_NUMBER_INVALID":
		return perr.ErrorCodeInvalidPhone
	case "PHONE_CODE_INVALID", "PHONE_CODE_EMPTY", "PASSWORD_HASH_INVALID":
		return perr.ErrorCodeUnauthorized
	case "PHONE_CODE_EXPIRED":
		return perr.ErrorCodeTimeout
	}
	if typ == "AUTH_KEY_UNREGISTERED" || strings.HasPrefix(typ, "SESSION_") || strings.HasPrefix(typ, "AUTH_KEY_") {
		return perr.ErrorCodeUnauthorized
	}
	return perr.ErrorCodeUpstream
}
