package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

const (
	maxTagNameLen = 100
	maxSlugLen    = 64
)

// NormalizeTagName trims, collapses internal whitespace and caps the length.
// The original casing is kept; case-folding happens only for dedup checks.
// The cap counts runes, matching the varchar(100) column, so a multi-byte
// name is never cut mid-rune.
func NormalizeTagName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(name) > maxTagNameLen {
		runes := []rune(name)
		name = string(runes[:maxTagNameLen])
	}
	return name
}

// DeriveTagSlug turns a normalized tag name into its canonical slug.
// Three stages, each a fallback for the previous one coming up empty:
// plain ASCII lowercase fold, transliteration/romanization, and finally a
// hash-derived token so a slug is always producible. Result is ≤64 chars.
func DeriveTagSlug(name string) string {
	s := asciiFold(name)
	if s == "" {
		s = slug.Make(name)
	}
	if s == "" {
		sum := sha256.Sum256([]byte(name))
		s = "tag" + hex.EncodeToString(sum[:4])
	}
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}

// asciiFold lowercases and keeps only [a-z0-9], joining runs of anything
// else with a single hyphen. Returns "" when the name has no ASCII
// alphanumerics at all (e.g. pure CJK input).
func asciiFold(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// foldKey is the case-folded comparison key used to deduplicate names
func foldKey(name string) string {
	return strings.ToLower(name)
}
