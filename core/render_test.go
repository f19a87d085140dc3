package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wansing/gazette/core"
)

func TestRenderContent(t *testing.T) {
	var got = string(core.RenderContent("# Heading\n\nSome *emphasis* and a [link](https://example.com)."))
	require.Contains(t, got, "<h1>Heading</h1>")
	require.Contains(t, got, "<em>emphasis</em>")
	require.Contains(t, got, `<a href="https://example.com"`)
}
