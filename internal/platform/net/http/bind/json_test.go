package bind

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	perr "tgcheck/internal/platform/errors"
)

type numberIn struct {
	Number string `json:"number" validate:"required,max=32,phone"`
}

type batchIn struct {
	Numbers []string `json:"numbers" validate:"required,min=1,max=3"`
}

func TestParseJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
	}{
		{name: "ok", body: `{"number":"+1 555 123"}`},
		{name: "empty", body: ``, code: perr.ErrorCodeJSON},
		{name: "broken", body: `{"number":`, code: perr.ErrorCodeJSON},
		{name: "unknown field", body: `{"number":"1","x":1}`, code: perr.ErrorCodeJSON},
		{name: "trailing", body: `{"number":"1"} {}`, code: perr.ErrorCodeJSON},
		{name: "missing", body: `{}`, code: perr.ErrorCodeValidation, field: "number"},
		{name: "no digit", body: `{"number":"abc"}`, code: perr.ErrorCodeValidation, field: "number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/check-account", strings.NewReader(tc.body))
			got, err := ParseJSON[numberIn](req)
			if tc.name == "ok" {
				if err != nil || got.Number != "+1 555 123" {
					t.Fatalf("got %+v, %v", got, err)
				}
				return
			}
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if tc.field != "" {
				if e, _ := perr.As(err); e.Field() != tc.field {
					t.Fatalf("field = %q", e.Field())
				}
			}
		})
	}
}

func TestParseJSON_BodyLimit(t *testing.T) {
	body := `{"number":"` + strings.Repeat("1", 64) + `"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	_, err := ParseJSON[numberIn](req, 16)
	if !perr.IsCode(err, perr.ErrorCodeJSON) || !strings.Contains(err.Error(), "16 bytes") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseJSON_ShortMessages(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"numbers":["1","2","3","4"]}`))
	_, err := ParseJSON[batchIn](req)
	e, ok := perr.As(err)
	if !ok || e.Field() != "numbers" {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "numbers must be at most 3") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestFieldMessage(t *testing.T) {
	if f, m := FieldMessage(nil); f != "" || m != "" {
		t.Fatalf("nil: %q %q", f, m)
	}
	if f, m := FieldMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("plain: %q %q", f, m)
	}
}
