// Package site assembles the configuration, content and assets that pages are
// rendered from.
package site

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chaininsights/blog/assets"
	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/content"
)

const (
	ContentDir   = "content"
	AssetsDir    = "assets"
	StaticDir    = "public"
	TemplatesDir = "templates"
	AboutPage    = "about.md"
)

type Site struct {
	Root       string
	Config     *config.SiteConfig
	Collection content.Collection
	Posts      []*content.Post
	Tags       []*content.Tag
	About      *content.Page
	Assets     []assets.Asset

	// LiveReload adds the reload client to every page; only the dev server sets it.
	LiveReload bool
}

// Load reads every document of the blog collection and bundles the stylesheets. Any
// invalid document fails the load.
func Load(ctx context.Context, root string, cfg *config.SiteConfig) (*Site, error) {
	collection := content.NewCollection(config.BlogCollection, cfg.Collections[config.BlogCollection])
	theme := cfg.Content.Highlight.Theme
	contentDir := filepath.Join(root, ContentDir)

	posts, err := content.Load(ctx, contentDir, collection, theme)
	if err != nil {
		return nil, errors.Wrapf(err, "load collection %q", collection.Name)
	}

	about, err := content.LoadPage(filepath.Join(contentDir, AboutPage), theme)
	if err != nil {
		return nil, err
	}

	bundled, err := assets.CompileStylesheets(root, cfg)
	if err != nil {
		return nil, err
	}

	if len(cfg.Build.Plugins) > 0 {
		log.Debug().Strs("plugins", cfg.Build.Plugins).Msg("Build plugins are passed through untouched")
	}

	s := &Site{
		Root:       root,
		Config:     cfg,
		Collection: collection,
		Posts:      posts,
		Tags:       content.CollectTags(posts),
		About:      about,
		Assets:     bundled,
	}

	log.Info().
		Str("root", root).
		Int("posts", len(s.Posts)).
		Int("tags", len(s.Tags)).
		Int("assets", len(s.Assets)).
		Msg("Site loaded")

	return s, nil
}

// Stylesheets returns the public paths of bundled CSS in declaration order.
func (s *Site) Stylesheets() []string {
	var hrefs []string
	for _, a := range s.Assets {
		if a.Stylesheet {
			hrefs = append(hrefs, a.PublicPath)
		}
	}
	return hrefs
}

// Tag returns the tag with the given slug, or nil.
func (s *Site) Tag(slug string) *content.Tag {
	for _, t := range s.Tags {
		if t.Slug == slug {
			return t
		}
	}
	return nil
}
