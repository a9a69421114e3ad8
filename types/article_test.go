package types

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenerateIDStableAndShort(t *testing.T) {
	a := GenerateID("https://example.com/article")
	b := GenerateID("https://example.com/article")
	c := GenerateID("https://example.com/other")

	if a != b {
		t.Error("same input must produce the same ID")
	}
	if a == c {
		t.Error("different inputs must produce different IDs")
	}
	if len(a) != 16 {
		t.Errorf("ID length = %d, want 16", len(a))
	}
}

func TestTruncateUTF8(t *testing.T) {
	if got := TruncateUTF8("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := TruncateUTF8("hello world", 5); got != "hello" {
		t.Errorf("ascii cut = %q, want %q", got, "hello")
	}

	// 2-byte runes: a 5-byte cut would land mid-rune and must back off.
	s := strings.Repeat("é", 10)
	got := TruncateUTF8(s, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("cut produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 2) {
		t.Errorf("multibyte cut = %q, want two runes", got)
	}

	// 4-byte emoji at the boundary.
	e := "abc😀def"
	got = TruncateUTF8(e, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("emoji cut produced invalid UTF-8: %q", got)
	}
	if got != "abc" {
		t.Errorf("emoji cut = %q, want %q", got, "abc")
	}
}
