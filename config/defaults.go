package config

const (
	DefaultPath = "site.yaml"

	BlogCollection = "blog"

	siteDescription = "Project progress, architecture insights, and lessons learned building the Chain Insights Agent ($CIA)."
)

// Default returns the Chain Insights blog configuration. Load decodes site.yaml over it.
func Default() *SiteConfig {
	return &SiteConfig{
		CompatibilityDate: "2025-07-15",
		Devtools:          Devtools{Enabled: true},
		App: App{
			BaseURL: "/blog/",
			PageTransition: PageTransition{
				Name: "page",
				Mode: "out-in",
			},
			Head: Head{
				Title: "Chain Insights Blog",
				Meta: []MetaTag{
					{Name: "description", Content: siteDescription},
					{Property: "og:title", Content: "Chain Insights Blog"},
					{Property: "og:description", Content: siteDescription},
					{Property: "og:image", Content: "/blog/cover.png"},
					{Name: "theme-color", Content: "#0A0A0F"},
				},
				Link: []LinkTag{
					{Rel: "icon", Type: "image/x-icon", Href: "/blog/favicon.ico"},
				},
			},
		},
		Content: ContentOptions{
			Highlight: Highlight{Theme: "github-dark"},
		},
		Collections: map[string]Collection{
			BlogCollection: {
				Type: "page",
				Source: CollectionSource{
					Include: "blog/**",
					Prefix:  "/post",
				},
			},
		},
		CSS:    []string{"~/assets/css/main.css"},
		Build:  BuildOptions{Plugins: []string{"tailwindcss"}},
		Output: Output{Preset: "github-pages"},
		RouteRules: RouteRules{
			"/":        {Prerender: true},
			"/about":   {Prerender: true},
			"/post/**": {Prerender: true},
			"/tags/**": {Prerender: true},
		},
	}
}
