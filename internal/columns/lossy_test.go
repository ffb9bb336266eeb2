package columns

import (
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestDecodeLossy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "Valid", raw: "héllo ✓", want: "héllo ✓"},
		{name: "LiteralReplacementChar", raw: "a\uFFFDb", want: "a\uFFFDb"},
		{name: "TwoInvalidBytes", raw: "x\xff\xfey", want: "x\uFFFD\uFFFDy"},
		{name: "TruncatedSequence", raw: "\xe2\x82", want: "\uFFFD"},
		{name: "TruncatedThenASCII", raw: "\xe2\x82x", want: "\uFFFDx"},
		{name: "TruncatedFourByte", raw: "\xf0\x9f\x98!", want: "\uFFFD!"},
		{name: "Overlong", raw: "\xc0\xaf", want: "\uFFFD\uFFFD"},
		{name: "Surrogate", raw: "\xed\xa0\x80", want: "\uFFFD\uFFFD\uFFFD"},
		{name: "AboveMaxRune", raw: "\xf4\x90\x80\x80", want: "\uFFFD\uFFFD\uFFFD\uFFFD"},
		{name: "LoneContinuation", raw: "a\x80b", want: "a\uFFFDb"},
		{name: "Latin1", raw: "caf\xe9", want: "caf\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeLossy([]byte(tt.raw)); got != tt.want {
				t.Errorf("decodeLossy(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
			if got := decodeText(tt.raw); got != tt.want {
				t.Errorf("decodeText(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRapidDecodeLossy_AlwaysValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOf(rapid.Byte()).Draw(t, "raw")
		got := decodeLossy(raw)
		if !utf8.ValidString(got) {
			t.Fatalf("decodeLossy(%q) = %q is not valid UTF-8", raw, got)
		}
		if utf8.Valid(raw) && got != string(raw) {
			t.Fatalf("decodeLossy(%q) = %q changed valid input", raw, got)
		}
	})
}
