package autolink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReplacesURLsWithPlaceholders(t *testing.T) {
	text, table := Extract("See https://example.com/docs and ftp://files.example.com.")
	require.Equal(t, "See __ANCHOR_0__ and __ANCHOR_1__.", text)
	require.Equal(t, Table{"https://example.com/docs", "ftp://files.example.com"}, table)
}

func TestExtractLeavesPlainTextAlone(t *testing.T) {
	text, table := Extract("no links here")
	require.Equal(t, "no links here", text)
	require.Empty(t, table)
}

func TestTrailingPunctuationStaysOutOfLink(t *testing.T) {
	_, table := Extract("read http://example.com/page; then stop.")
	require.Equal(t, Table{"http://example.com/page"}, table)
}

func TestSubstituteBuildsEscapedAnchors(t *testing.T) {
	text, table := Extract("docs at https://example.com/a?b=1&c=2 today")
	got := Substitute(text, table)
	require.Equal(t,
		`docs at <a href="https://example.com/a?b=1&amp;c=2">https://example.com/a?b=1&amp;c=2</a> today`,
		got)
}

func TestRoundTripThroughEscaping(t *testing.T) {
	// Mirrors the plaintext formatter: extract, escape, substitute.
	text, table := Extract("x < y, see https://example.com")
	require.Equal(t, "x < y, see __ANCHOR_0__", text)
	got := Substitute("x &lt; y, see __ANCHOR_0__", table)
	require.Equal(t, `x &lt; y, see <a href="https://example.com">https://example.com</a>`, got)
}
