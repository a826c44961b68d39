package handlers

import (
	"html/template"

	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/content"
)

// Page data handed to templates.

type tagLink struct {
	Name  string
	URL   string
	Count int
}

type postView struct {
	Title       string
	Description string
	Date        string
	Author      string
	Image       string
	URL         string
	Tags        []tagLink
	HasTags     bool
	HTML        template.HTML
}

type tagView struct {
	Name  string
	Posts []postView
}

func newPostView(cfg *config.SiteConfig, p *content.Post) postView {
	tags := make([]tagLink, 0, len(p.Tags))
	for _, name := range p.Tags {
		slug := content.Slugify(name)
		if slug == "" {
			continue
		}
		tags = append(tags, tagLink{Name: name, URL: cfg.URL("/tags/" + slug)})
	}
	return postView{
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Author:      p.Author,
		Image:       p.Image,
		URL:         cfg.URL(p.Route),
		Tags:        tags,
		HasTags:     len(tags) > 0,
		HTML:        p.HTML,
	}
}

func newPostViews(cfg *config.SiteConfig, posts []*content.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(cfg, p))
	}
	return views
}
