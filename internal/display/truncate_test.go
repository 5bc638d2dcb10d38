package display

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	long := Truncate(strings.Repeat("a", 60), 50)
	assert.Equal(t, 51, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, Ellipsis))
	assert.Equal(t, strings.Repeat("a", 50)+Ellipsis, long)

	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, strings.Repeat("b", 50), Truncate(strings.Repeat("b", 50), 50), "exactly at limit is kept")
}

func TestTruncate_Newlines(t *testing.T) {
	assert.Equal(t, "line one line two", Truncate("\nline one\nline two\n", 50))
	assert.Equal(t, "a b c", Truncate("a\r\nb\rc", 50))
}

func TestTruncate_CountsRunes(t *testing.T) {
	jp := strings.Repeat("名", 10)
	got := Truncate(jp, 5)
	assert.Equal(t, strings.Repeat("名", 5)+Ellipsis, got)
	assert.True(t, utf8.ValidString(got))
}

func TestTruncate_Empty(t *testing.T) {
	assert.Equal(t, "", Truncate("", 10))
	assert.Equal(t, "", Truncate(" \n ", 10))

	tr := Truncator{Limit: 10, Placeholder: "(no answer)"}
	assert.Equal(t, "(no answer)", tr.Truncate("  "))
	assert.Equal(t, "ok", tr.Truncate("ok"))
}

func TestTruncate_NoLimit(t *testing.T) {
	text := strings.Repeat("x", 500)
	assert.Equal(t, text, Truncate(text, 0))
	assert.Equal(t, text, Truncate(text, -1))
}
