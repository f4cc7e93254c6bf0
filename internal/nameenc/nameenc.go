// Package nameenc converts archive entry names between their stored byte
// form and Go strings.
//
// Archives written by this module store UTF-8. Archives produced by the
// original Japanese tooling can carry CP932 names instead, so decoding is
// best-effort and never fails: valid UTF-8 passes through, otherwise a
// Shift-JIS interpretation is attempted, otherwise invalid bytes are
// replaced with U+FFFD.
package nameenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// MaxEncodedLen is the longest stored name in bytes. The name field is 64
// bytes and always NUL-terminated, leaving 63 for the name itself.
const MaxEncodedLen = 63

// Decode interprets the raw bytes of a name field (already cut at the first
// NUL) as a string.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	if s, err := japanese.ShiftJIS.NewDecoder().Bytes(raw); err == nil && !bytes.ContainsRune(s, utf8.RuneError) {
		return string(s)
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

// Encode returns the stored byte form of name, truncated to MaxEncodedLen
// bytes. Truncation is byte-wise, matching the archive writers this format
// ships with, even when it splits a multi-byte rune; Decode substitutes
// U+FFFD for the orphaned tail so such a name still reads back.
func Encode(name string) []byte {
	b := []byte(name)
	if len(b) > MaxEncodedLen {
		b = b[:MaxEncodedLen]
	}
	return b
}
