package handlers

import (
	"html/template"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chaininsights/blog/site"
	"github.com/chaininsights/blog/utils"
)

// Router serves a loaded site under its base URL.
type Router struct {
	*mux.Router

	site    *site.Site
	routes  []string
	lastMod map[string]string
}

// SetupRouter registers one handler per page of s. Page routes are recorded, relative
// to the base URL, in registration order.
func SetupRouter(s *site.Site) (*Router, error) {
	r := &Router{Router: mux.NewRouter(), site: s, lastMod: make(map[string]string)}
	r.StrictSlash(true)

	r.NotFoundHandler = http.HandlerFunc(r.Custom404Handler)

	sub := r.Router
	if prefix := strings.TrimSuffix(s.Config.App.BaseURL, "/"); prefix != "" {
		sub = r.PathPrefix(prefix).Subrouter()
		sub.NotFoundHandler = r.NotFoundHandler
		r.Handle("/", http.RedirectHandler(s.Config.App.BaseURL, http.StatusFound)).Methods("GET")
	}

	r.page(sub, "/", r.IndexHandler)
	r.page(sub, "/about", r.AboutHandler)
	for _, post := range s.Posts {
		r.page(sub, post.Route, r.PostHandler(newPostView(s.Config, post)))
		if _, err := time.Parse(time.DateOnly, post.Date); err == nil {
			r.lastMod[post.Route] = post.Date
		}
	}
	r.page(sub, "/tags", r.TagsHandler)
	for _, tag := range s.Tags {
		r.page(sub, "/tags/"+tag.Slug, r.TagHandler(tagView{
			Name:  tag.Name,
			Posts: newPostViews(s.Config, tag.Posts),
		}))
	}

	for _, asset := range s.Assets {
		sub.HandleFunc("/"+asset.OutputPath, assetHandler(asset.OutputPath, asset.Contents)).Methods("GET")
	}

	if s.Config.Origin != "" {
		sitemap, err := utils.GenerateSitemapContent(s.Config.Origin, r.SitemapEntries())
		if err != nil {
			return nil, errors.Wrap(err, "error generating sitemap")
		}
		sub.HandleFunc("/sitemap.xml", assetHandler("sitemap.xml", []byte(sitemap))).Methods("GET")
	}

	staticDir := filepath.Join(s.Root, site.StaticDir)
	sub.PathPrefix("/").Handler(r.staticHandler(staticDir)).Methods("GET")

	return r, nil
}

func (r *Router) page(sub *mux.Router, route string, h http.HandlerFunc) {
	sub.HandleFunc(route, h).Methods("GET")
	r.routes = append(r.routes, route)
}

// Routes returns the page routes relative to the base URL.
func (r *Router) Routes() []string {
	return append([]string(nil), r.routes...)
}

// SitemapEntries lists every page under the base URL. Posts dated YYYY-MM-DD
// carry the date as lastmod.
func (r *Router) SitemapEntries() []utils.SitemapEntry {
	entries := make([]utils.SitemapEntry, 0, len(r.routes))
	for _, route := range r.routes {
		entries = append(entries, utils.SitemapEntry{
			Path:    r.site.Config.URL(route),
			LastMod: r.lastMod[route],
		})
	}
	return entries
}

func (r *Router) IndexHandler(w http.ResponseWriter, req *http.Request) {
	ctx := newContext(r.site, req.URL.Path)
	posts := newPostViews(r.site.Config, r.site.Posts)
	ctx.Set("posts", posts)
	ctx.Set("empty", len(posts) == 0)
	renderPage(w, r.site, http.StatusOK, "index.plush.html", ctx)
}

func (r *Router) AboutHandler(w http.ResponseWriter, req *http.Request) {
	ctx := newContext(r.site, req.URL.Path)
	description, _ := r.site.Config.App.Head.MetaContent("description")
	ctx.Set("description", description)
	ctx.Set("hasAbout", r.site.About != nil)
	ctx.Set("about", template.HTML(""))
	if r.site.About != nil {
		ctx.Set("about", r.site.About.HTML)
	}
	renderPage(w, r.site, http.StatusOK, "about.plush.html", ctx)
}

func (r *Router) PostHandler(post postView) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := newContext(r.site, req.URL.Path)
		ctx.Set("post", post)
		renderPage(w, r.site, http.StatusOK, "post.plush.html", ctx)
	}
}

func (r *Router) TagsHandler(w http.ResponseWriter, req *http.Request) {
	ctx := newContext(r.site, req.URL.Path)
	links := make([]tagLink, 0, len(r.site.Tags))
	for _, t := range r.site.Tags {
		links = append(links, tagLink{
			Name:  t.Name,
			URL:   r.site.Config.URL("/tags/" + t.Slug),
			Count: len(t.Posts),
		})
	}
	ctx.Set("tags", links)
	renderPage(w, r.site, http.StatusOK, "tags.plush.html", ctx)
}

func (r *Router) TagHandler(tag tagView) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := newContext(r.site, req.URL.Path)
		ctx.Set("tag", tag)
		renderPage(w, r.site, http.StatusOK, "tag.plush.html", ctx)
	}
}

// staticHandler serves files of the public directory and falls back to the 404 page.
func (r *Router) staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rel := strings.TrimPrefix(req.URL.Path, strings.TrimSuffix(r.site.Config.App.BaseURL, "/"))
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+rel)))
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			r.Custom404Handler(w, req)
			return
		}
		http.ServeFile(w, req, name)
	})
}

func assetHandler(name string, body []byte) http.HandlerFunc {
	contentType := mime.TypeByExtension(path.Ext(name))
	return func(w http.ResponseWriter, req *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if _, err := w.Write(body); err != nil {
			log.Warn().Err(err).Str("asset", name).Msg("Error writing response")
		}
	}
}
