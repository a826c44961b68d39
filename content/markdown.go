package content

import (
	"fmt"
	"html"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown converts body to HTML wrapped in an article element. The highlight
// theme is not applied here; it is exposed to the stylesheet as a class and attribute.
func RenderMarkdown(body []byte, theme string) template.HTML {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	htmlContent := markdown.ToHTML(body, p, renderer)

	class := "prose"
	if theme != "" {
		class += " highlight-" + theme
	}

	return template.HTML(fmt.Sprintf(
		"<article class=\"%s\" data-highlight-theme=\"%s\">\n%s</article>\n",
		html.EscapeString(class), html.EscapeString(theme), htmlContent,
	))
}
