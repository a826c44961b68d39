package config

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	jamle "github.com/woozymasta/jamle"

	"github.com/chaininsights/blog/preset"
)

// Load reads the site configuration from path on top of Default. When required is
// false a missing file leaves the defaults in place. Environment variables inside the
// file are expanded by jamle.
func Load(_ context.Context, path string, required bool) (*SiteConfig, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if required {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", path)
		}
		log.Debug().Str("config_path", path).Msg("No site config file, using defaults")
	case err != nil:
		return nil, errors.Wrapf(err, "read config %q", path)
	default:
		if err := decodeOverDefaults(raw, cfg); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "decode %s: %v", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("config_path", path).
		Str("base_url", cfg.App.BaseURL).
		Str("preset", cfg.Output.Preset).
		Int("route_rules", len(cfg.RouteRules)).
		Msg("Site configuration loaded")

	return cfg, nil
}

// decodeOverDefaults decodes raw on top of cfg. Lists given in the file replace the
// default lists instead of merging into them element by element; maps still merge by key.
func decodeOverDefaults(raw []byte, cfg *SiteConfig) error {
	meta, link, css, plugins := cfg.App.Head.Meta, cfg.App.Head.Link, cfg.CSS, cfg.Build.Plugins
	cfg.App.Head.Meta, cfg.App.Head.Link, cfg.CSS, cfg.Build.Plugins = nil, nil, nil, nil

	if err := jamle.Unmarshal(raw, cfg); err != nil {
		return err
	}

	if cfg.App.Head.Meta == nil {
		cfg.App.Head.Meta = meta
	}
	if cfg.App.Head.Link == nil {
		cfg.App.Head.Link = link
	}
	if cfg.CSS == nil {
		cfg.CSS = css
	}
	if cfg.Build.Plugins == nil {
		cfg.Build.Plugins = plugins
	}
	return nil
}

// Validate checks the invariants the build relies on.
func (c *SiteConfig) Validate() error {
	if !strings.HasPrefix(c.App.BaseURL, "/") || !strings.HasSuffix(c.App.BaseURL, "/") {
		return errors.Wrapf(ErrInvalidConfig, "app.base_url %q must start and end with /", c.App.BaseURL)
	}
	if c.App.Head.Title == "" {
		return errors.Wrap(ErrInvalidConfig, "app.head.title is empty")
	}
	for i, m := range c.App.Head.Meta {
		if (m.Name == "") == (m.Property == "") {
			return errors.Wrapf(ErrInvalidConfig, "app.head.meta[%d] needs exactly one of name or property", i)
		}
	}

	if _, ok := preset.Lookup(c.Output.Preset); !ok {
		return errors.Wrapf(ErrInvalidConfig, "unknown output preset %q", c.Output.Preset)
	}

	for pattern := range c.RouteRules {
		if !strings.HasPrefix(pattern, "/") {
			return errors.Wrapf(ErrInvalidConfig, "route rule %q must start with /", pattern)
		}
		if strings.Contains(strings.TrimSuffix(pattern, "/**"), "*") {
			return errors.Wrapf(ErrInvalidConfig, "route rule %q: only a trailing /** wildcard is supported", pattern)
		}
	}

	blog, ok := c.Collections[BlogCollection]
	if !ok {
		return errors.Wrapf(ErrInvalidConfig, "collection %q is not declared", BlogCollection)
	}
	if blog.Source.Include == "" {
		return errors.Wrapf(ErrInvalidConfig, "collection %q has no source.include", BlogCollection)
	}
	if !strings.HasPrefix(blog.Source.Prefix, "/") {
		return errors.Wrapf(ErrInvalidConfig, "collection %q prefix %q must start with /", BlogCollection, blog.Source.Prefix)
	}

	return nil
}
