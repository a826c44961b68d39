package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSitemapContent(t *testing.T) {
	out, err := GenerateSitemapContent("https://example.org/", []SitemapEntry{
		{Path: "/blog/"},
		{Path: "/blog/post/foo/bar", LastMod: "2025-07-15"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.org/blog/</loc>")
	assert.Contains(t, out, "<loc>https://example.org/blog/post/foo/bar</loc>")
	assert.Contains(t, out, "<lastmod>2025-07-15</lastmod>")
	assert.Equal(t, 1, strings.Count(out, "<lastmod>"))
}

func TestGenerateSitemapContentNeedsOrigin(t *testing.T) {
	_, err := GenerateSitemapContent("", nil)
	assert.Error(t, err)
}

func TestGenerateSitemaps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateSitemaps(dir, "https://example.org", []SitemapEntry{{Path: "/blog/"}}))

	data, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<loc>https://example.org/blog/</loc>")
}
