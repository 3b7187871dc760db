// Package markdown renders blog content to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Render converts markdown text to HTML. On conversion failure the raw text
// is returned unchanged so a bad document never breaks a read.
func Render(text string) string {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}
