package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/chaininsights/blog/site"
)

//go:embed templates
var builtinTemplates embed.FS

const (
	baseLayout     = "layouts/base.plush.html"
	LiveReloadPath = "/__livereload"
)

// loadTemplate prefers <root>/templates/<name> over the built-in copy.
func loadTemplate(root, name string) (string, error) {
	override := filepath.Join(root, site.TemplatesDir, filepath.FromSlash(name))
	if data, err := os.ReadFile(override); err == nil {
		return string(data), nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "read template %s", override)
	}

	data, err := builtinTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", errors.Wrapf(err, "template %s", name)
	}
	return string(data), nil
}

func renderPlushTemplate(root, name string, ctx *plush.Context) (string, error) {
	source, err := loadTemplate(root, name)
	if err != nil {
		return "", err
	}

	tmpl, err := plush.Parse(source)
	if err != nil {
		return "", errors.Wrapf(err, "parse %s", name)
	}

	out, err := tmpl.Exec(ctx)
	return out, errors.Wrapf(err, "execute %s", name)
}

// newContext sets the values every template may reference.
func newContext(s *site.Site, currentPath string) *plush.Context {
	cfg := s.Config
	ctx := plush.NewContext()
	ctx.Set("head", cfg.App.Head)
	ctx.Set("transition", cfg.App.PageTransition)
	ctx.Set("stylesheets", s.Stylesheets())
	ctx.Set("liveReload", s.LiveReload)
	ctx.Set("liveReloadPath", LiveReloadPath)
	ctx.Set("currentPath", currentPath)
	ctx.Set("url", func(p string) string {
		return cfg.URL(p)
	})
	return ctx
}

// renderPage executes page inside the base layout and writes it with status.
func renderPage(w http.ResponseWriter, s *site.Site, status int, page string, ctx *plush.Context) {
	content, err := renderPlushTemplate(s.Root, page, ctx)
	if err != nil {
		log.Error().Err(err).Str("template", page).Msg("Error rendering template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx.Set("yield", template.HTML(content))

	pageHTML, err := renderPlushTemplate(s.Root, baseLayout, ctx)
	if err != nil {
		log.Error().Err(err).Str("template", baseLayout).Msg("Error executing base layout")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(pageHTML)); err != nil {
		log.Warn().Err(err).Msg("Error writing response")
	}
}
