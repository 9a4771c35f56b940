package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTagName(t *testing.T) {
	assert.Equal(t, "Go Lang", NormalizeTagName("  Go   Lang  "))
	assert.Equal(t, "", NormalizeTagName("   "))

	long := strings.Repeat("a", 150)
	assert.Len(t, NormalizeTagName(long), 100)
}

func TestNormalizeTagName_MultiByteCap(t *testing.T) {
	// 40 runes but 120 bytes; well under the 100-char cap, so untouched
	short := strings.Repeat("가", 40)
	assert.Equal(t, short, NormalizeTagName(short))

	// Over the cap: cut on a rune boundary, never mid-rune
	long := strings.Repeat("가", 120)
	got := NormalizeTagName(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
}

func TestDeriveTagSlug_Ascii(t *testing.T) {
	assert.Equal(t, "go-lang", DeriveTagSlug("Go Lang"))
	assert.Equal(t, "c-plus-plus", DeriveTagSlug("C Plus Plus"))
	assert.Equal(t, "web3", DeriveTagSlug("Web3"))
	assert.Equal(t, "a-b", DeriveTagSlug("a...b"))
}

func TestDeriveTagSlug_SameSlugDifferentCasing(t *testing.T) {
	assert.Equal(t, DeriveTagSlug("GoLang"), DeriveTagSlug("golang"))
	assert.Equal(t, DeriveTagSlug("Go Lang"), DeriveTagSlug("go   lang"))
}

func TestDeriveTagSlug_NonAsciiFallsBackToHash(t *testing.T) {
	// Pure CJK input has no ASCII alphanumerics; the slug must still be
	// non-empty, stable and within bounds.
	s1 := DeriveTagSlug("日本語")
	s2 := DeriveTagSlug("日本語")
	assert.NotEmpty(t, s1)
	assert.Equal(t, s1, s2)
	assert.LessOrEqual(t, len(s1), 64)

	other := DeriveTagSlug("中文")
	assert.NotEqual(t, s1, other)
}

func TestDeriveTagSlug_LengthCap(t *testing.T) {
	long := strings.Repeat("ab ", 40)
	s := DeriveTagSlug(NormalizeTagName(long))
	assert.LessOrEqual(t, len(s), 64)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, foldKey("GoLang"), foldKey("gOlAnG"))
}
