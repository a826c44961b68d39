package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, rel, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "blog/foo/bar.md", "---\ntitle: Bar\ndescription: d\ndate: 2025-01-01\ntags: [x, y]\n---\n# Bar\n")
	writeDoc(t, dir, "blog/newer.md", "---\ntitle: Newer\ndescription: d\ndate: 2025-03-01\n---\nbody\n")
	writeDoc(t, dir, "blog/.draft.md", "not even front-matter")
	writeDoc(t, dir, "blog/.hidden/skip.md", "nope")
	writeDoc(t, dir, "blog/notes.txt", "ignored")
	writeDoc(t, dir, "about.md", "# About\n")

	posts, err := Load(context.Background(), dir, blogCollection(), "github-dark")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "/post/newer", posts[0].Route)
	assert.Equal(t, "Chain Insights Team", posts[0].Author)

	assert.Equal(t, "blog/foo/bar.md", posts[1].Source)
	assert.Equal(t, "/post/foo/bar", posts[1].Route)
	assert.Equal(t, []string{"x", "y"}, posts[1].Tags)
	assert.Contains(t, string(posts[1].HTML), "<h1 id=\"bar\">Bar</h1>")
	assert.Equal(t, "# Bar\n", string(posts[1].Body))
}

func TestLoadFailsOnInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "blog/good.md", "---\ntitle: Good\ndescription: d\ndate: 2025-01-01\n---\n")
	writeDoc(t, dir, "blog/bad.md", "---\ndescription: d\ndate: 2025-01-01\n---\n")

	_, err := Load(context.Background(), dir, blogCollection(), "")
	require.Error(t, err)

	var verr *SchemaValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "blog/bad.md", verr.Document)
	assert.Equal(t, "title", verr.Field())
}

func TestLoadMalformedFrontMatterIsValidationError(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "blog/broken.md", "---\ntitle: never closed\n")

	_, err := Load(context.Background(), dir, blogCollection(), "")
	assert.True(t, errors.Is(err, ErrSchemaValidation), "got %v", err)
}

func TestLoadDuplicateRoute(t *testing.T) {
	dir := t.TempDir()
	doc := "---\ntitle: T\ndescription: d\ndate: 2025-01-01\n---\n"
	writeDoc(t, dir, "blog/series.md", doc)
	writeDoc(t, dir, "blog/series/index.md", doc)

	_, err := Load(context.Background(), dir, blogCollection(), "")
	assert.True(t, errors.Is(err, ErrDuplicateRoute), "got %v", err)
}

func TestLoadMissingDir(t *testing.T) {
	posts, err := Load(context.Background(), filepath.Join(t.TempDir(), "content"), blogCollection(), "")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLoadPage(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "about.md", "---\ntitle: About us\n---\nWe build agents.\n")

	page, err := LoadPage(filepath.Join(dir, "about.md"), "")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "About us", page.Title)
	assert.Contains(t, string(page.HTML), "We build agents.")

	page, err = LoadPage(filepath.Join(dir, "missing.md"), "")
	require.NoError(t, err)
	assert.Nil(t, page)
}
