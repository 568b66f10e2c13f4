// Package render converts generated markdown into HTML for the result page.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// engine renders CommonMark (fenced code included) plus GFM tables and
// strikethrough. Raw HTML in the source is dropped, so the output can be
// embedded without escaping.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
)

// Markdown converts src to HTML.
func Markdown(src string) (template.HTML, error) {
	var out bytes.Buffer
	if err := engine.Convert([]byte(src), &out); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(out.String()), nil
}
