package core

import (
	"html/template"

	"gitlab.com/golang-commonmark/markdown"
)

var markdownParser = markdown.New(markdown.HTML(true), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// RenderContent translates the CommonMark content of an article or
// newsletter to HTML.
func RenderContent(content string) template.HTML {
	return template.HTML(markdownParser.RenderToString([]byte(content)))
}
