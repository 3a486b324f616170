package phonelist

import (
	"strings"
	"sync"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// foldPool holds transformer chains that map compatibility and fullwidth digits to ASCII
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, width.Fold)
	},
}

// Normalize returns the E.164-ish form of raw: ASCII digits only with a leading '+'.
// No validation happens here; "abc" normalizes to "+" and the upstream decides
func Normalize(raw string) string {
	raw = strings.ToValidUTF8(strings.TrimSpace(raw), "")

	tr := foldPool.Get().(transform.Transformer)
	folded, _, err := transform.String(tr, raw)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded) + 1)
	b.WriteByte('+')
	for i := 0; i < len(folded); i++ {
		if c := folded[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Digits returns the phone without the leading '+', the form the upstream echoes back
func Digits(phone string) string { return strings.TrimPrefix(phone, "+") }
