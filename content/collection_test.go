package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaininsights/blog/config"
)

func blogCollection() Collection {
	cfg := config.Default()
	return NewCollection(config.BlogCollection, cfg.Collections[config.BlogCollection])
}

func TestCollectionMatch(t *testing.T) {
	c := blogCollection()

	for _, source := range []string{"blog/a.md", "blog/foo/bar.md", "blog/x/y/z.markdown"} {
		assert.True(t, c.Match(source), source)
	}
	for _, source := range []string{"about.md", "blog.md", "blogs/a.md", "blog/a.txt", "drafts/blog/a.md"} {
		assert.False(t, c.Match(source), source)
	}
}

func TestCollectionRouteFor(t *testing.T) {
	c := blogCollection()

	cases := map[string]string{
		"blog/foo/bar.md":      "/post/foo/bar",
		"blog/hello-world.md":  "/post/hello-world",
		"blog/series/index.md": "/post/series",
		"blog/index.md":        "/post",
		"blog/a/b/c.markdown":  "/post/a/b/c",
	}
	for source, want := range cases {
		assert.Equal(t, want, c.RouteFor(source), source)
	}
}

func TestCollectionSingleStarInclude(t *testing.T) {
	c := Collection{Name: "notes", Include: "notes/*.md", Prefix: "/n"}

	assert.True(t, c.Match("notes/a.md"))
	assert.False(t, c.Match("notes/deep/a.md"))
	assert.Equal(t, "/n/a", c.RouteFor("notes/a.md"))
}
