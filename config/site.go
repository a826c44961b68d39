package config

import (
	"path"
	"path/filepath"
	"strings"
)

// config/site.go

type SiteConfig struct {
	CompatibilityDate string                `yaml:"compatibility_date" json:"compatibility_date"`
	Devtools          Devtools              `yaml:"devtools" json:"devtools"`
	App               App                   `yaml:"app" json:"app"`
	Content           ContentOptions        `yaml:"content" json:"content"`
	Collections       map[string]Collection `yaml:"collections" json:"collections"`
	CSS               []string              `yaml:"css" json:"css"`
	Build             BuildOptions          `yaml:"build" json:"build"`
	Output            Output                `yaml:"output" json:"output"`
	Origin            string                `yaml:"origin" json:"origin"`
	RouteRules        RouteRules            `yaml:"route_rules" json:"route_rules"`
}

type Devtools struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type App struct {
	BaseURL        string         `yaml:"base_url" json:"base_url"`
	PageTransition PageTransition `yaml:"page_transition" json:"page_transition"`
	Head           Head           `yaml:"head" json:"head"`
}

// PageTransition is handed to the layout untouched.
type PageTransition struct {
	Name string `yaml:"name" json:"name"`
	Mode string `yaml:"mode" json:"mode"`
}

type Head struct {
	Title string    `yaml:"title" json:"title"`
	Meta  []MetaTag `yaml:"meta" json:"meta"`
	Link  []LinkTag `yaml:"link" json:"link"`
}

// MetaTag is a <meta> element keyed either by name or by property (Open Graph).
type MetaTag struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Property string `yaml:"property,omitempty" json:"property,omitempty"`
	Content  string `yaml:"content" json:"content"`
}

type LinkTag struct {
	Rel  string `yaml:"rel" json:"rel"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	Href string `yaml:"href" json:"href"`
}

type ContentOptions struct {
	Highlight Highlight `yaml:"highlight" json:"highlight"`
}

type Highlight struct {
	Theme string `yaml:"theme" json:"theme"`
}

type Collection struct {
	Type   string           `yaml:"type" json:"type"`
	Source CollectionSource `yaml:"source" json:"source"`
}

type CollectionSource struct {
	Include string `yaml:"include" json:"include"`
	Prefix  string `yaml:"prefix" json:"prefix"`
}

// BuildOptions.Plugins is opaque: names are recorded and logged, never interpreted.
type BuildOptions struct {
	Plugins []string `yaml:"plugins" json:"plugins"`
}

type Output struct {
	Preset string `yaml:"preset" json:"preset"`
}

// MetaContent returns the content of the first meta tag with the given name or property.
func (h Head) MetaContent(key string) (string, bool) {
	for _, m := range h.Meta {
		if m.Name == key || m.Property == key {
			return m.Content, true
		}
	}
	return "", false
}

// URL joins an app-relative path onto the base URL, keeping a trailing slash if p has one.
func (c *SiteConfig) URL(p string) string {
	base := c.App.BaseURL
	if base == "" {
		base = "/"
	}
	if p == "" || p == "/" {
		return base
	}
	joined := path.Join(base, p)
	if strings.HasSuffix(p, "/") {
		joined += "/"
	}
	return joined
}

// ResolvePath maps a "~/"-prefixed path onto the site root.
func ResolvePath(root, p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(root, filepath.FromSlash(rest))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
