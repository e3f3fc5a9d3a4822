// Package markdown converts comment text to HTML.
package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Converter turns Markdown source into an HTML fragment
type Converter interface {
	ToHTML(src string) string
}

// HTMLConverter renders CommonMark-style Markdown with gomarkdown
type HTMLConverter struct {
	extensions parser.Extensions
	flags      html.Flags
}

// NewHTMLConverter creates a converter with the common extensions enabled.
// Links open in a new tab.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{
		extensions: parser.CommonExtensions | parser.AutoHeadingIDs,
		flags:      html.CommonFlags | html.HrefTargetBlank,
	}
}

// ToHTML converts src. Empty or blank input yields an empty string.
func (c *HTMLConverter) ToHTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	// parsers keep state between documents, so each call gets its own
	p := parser.NewWithExtensions(c.extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: c.flags})

	out := markdown.ToHTML(parser.NormalizeNewlines([]byte(src)), p, renderer)
	return strings.TrimSpace(string(out))
}

// Nop returns the source unchanged
type Nop struct{}

// ToHTML implements Converter
func (Nop) ToHTML(src string) string {
	return src
}
