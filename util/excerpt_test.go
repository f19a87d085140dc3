package util_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wansing/gazette/util"
)

func TestExcerpt(t *testing.T) {

	t.Run("strips markup", func(t *testing.T) {
		require.Equal(t,
			"Some emphasis and a link.",
			util.Excerpt(`<p>Some <em>emphasis</em> and a <a href="https://example.com">link</a>.</p>`, 100),
		)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		require.Equal(t,
			"one two three",
			util.Excerpt("<p>one</p>\n\n<p>two\n\tthree</p>", 100),
		)
	})

	t.Run("truncates", func(t *testing.T) {
		var got = util.Excerpt("<p>the quick brown fox jumps over the lazy dog</p>", 20)
		require.LessOrEqual(t, len(got), 20)
		require.Contains(t, got, "the quick")
	})
}
