package content

import (
	"context"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Post is a validated document of the blog collection.
type Post struct {
	BlogPost

	// Source is the slash-separated path relative to the content directory.
	Source string
	Route  string
	Body   []byte
	HTML   template.HTML
}

// HasImage reports whether the post declares a cover image.
func (p *Post) HasImage() bool { return p.Image != "" }

// Load walks contentDir and returns the documents of c, validated and rendered. The
// first invalid document aborts the load with its *SchemaValidationError. A missing
// content directory yields no posts.
func Load(ctx context.Context, contentDir string, c Collection, theme string) ([]*Post, error) {
	if _, err := os.Stat(contentDir); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("content_dir", contentDir).Msg("Content directory does not exist")
		return nil, nil
	}

	var posts []*Post
	routes := make(map[string]string)

	err := filepath.WalkDir(contentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p != contentDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(contentDir, p)
		if err != nil {
			return errors.WithStack(err)
		}
		source := filepath.ToSlash(rel)
		if !c.Match(source) {
			return nil
		}

		post, err := loadPost(p, source, c, theme)
		if err != nil {
			return err
		}

		if prev, exists := routes[post.Route]; exists {
			return errors.Wrapf(ErrDuplicateRoute, "%s and %s both resolve to %s", prev, source, post.Route)
		}
		routes[post.Route] = source
		posts = append(posts, post)

		log.Debug().
			Str("collection", c.Name).
			Str("document", source).
			Str("route", post.Route).
			Msg("Document loaded")
		return nil
	})
	if err != nil {
		return nil, err
	}

	SortPosts(posts)
	return posts, nil
}

func loadPost(fullPath, source string, c Collection, theme string) (*Post, error) {
	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", fullPath)
	}

	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, invalidDocument(source, err.Error())
	}

	meta, err := Validate(source, fm)
	if err != nil {
		return nil, err
	}

	return &Post{
		BlogPost: meta,
		Source:   source,
		Route:    c.RouteFor(source),
		Body:     body,
		HTML:     RenderMarkdown(body, theme),
	}, nil
}

// SortPosts orders posts newest first; equal dates fall back to route order.
func SortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Route < posts[j].Route
	})
}
