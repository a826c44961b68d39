package content

import (
	"html/template"
	"os"

	"github.com/pkg/errors"
)

// Page is a free-form markdown page outside any collection, such as about.md.
type Page struct {
	Title       string
	Description string
	HTML        template.HTML
}

// LoadPage reads a standalone page. Its front-matter is optional and not validated;
// only string title and description are picked up. A missing file returns nil, nil.
func LoadPage(path, theme string) (*Page, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read page %q", path)
	}

	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "page %q", path)
	}

	page := &Page{HTML: RenderMarkdown(body, theme)}
	if s, ok := fm["title"].(string); ok {
		page.Title = s
	}
	if s, ok := fm["description"].(string); ok {
		page.Description = s
	}
	return page, nil
}
