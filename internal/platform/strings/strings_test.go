package strings

import (
	"testing"

	kit "tgcheck/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"Authorization"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "Authorization" {
		t.Fatalf("nil input: %v", got)
	}
	if got := IfEmpty([]string{}, def); len(got) != 1 {
		t.Fatalf("empty input: %v", got)
	}
	if got := IfEmpty([]string{"X-Request-ID", "Accept"}, def); len(got) != 2 {
		t.Fatalf("kept input: %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"meta":       "/meta",
		"/meta":      "/meta",
		" /meta/ ":   "/meta",
		"api/check/": "/api/check",
		"//session":  "/session",
	} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", "  ", " // "} {
		kit.MustPanic(t, func() { MustPrefix(in) })
	}
}
