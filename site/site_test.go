package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaininsights/blog/config"
	"github.com/chaininsights/blog/content"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "content/blog/a.md", "---\ntitle: A\ndescription: a\ndate: 2025-07-01\ntags: [Go]\n---\nA body\n")
	writeFile(t, root, "content/blog/b.md", "---\ntitle: B\ndescription: b\ndate: 2025-07-10\ntags: [go, agents]\n---\nB body\n")
	writeFile(t, root, "content/about.md", "---\ntitle: About us\n---\nabout body\n")
	writeFile(t, root, "assets/css/main.css", "a { color: red }\n")

	s, err := Load(context.Background(), root, config.Default())
	require.NoError(t, err)

	require.Len(t, s.Posts, 2)
	assert.Equal(t, "/post/b", s.Posts[0].Route)
	assert.Equal(t, "/post/a", s.Posts[1].Route)
	assert.Equal(t, "blog", s.Collection.Name)

	require.NotNil(t, s.About)
	assert.Equal(t, "About us", s.About.Title)

	require.Len(t, s.Tags, 2)
	goTag := s.Tag("go")
	require.NotNil(t, goTag)
	assert.Len(t, goTag.Posts, 2)
	assert.Nil(t, s.Tag("rust"))

	hrefs := s.Stylesheets()
	require.Len(t, hrefs, 1)
	assert.Regexp(t, `^/blog/_assets/main_[A-Za-z0-9_-]+\.css$`, hrefs[0])
	assert.False(t, s.LiveReload)
}

func TestLoadWithoutContent(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.CSS = nil

	s, err := Load(context.Background(), root, cfg)
	require.NoError(t, err)
	assert.Empty(t, s.Posts)
	assert.Empty(t, s.Tags)
	assert.Nil(t, s.About)
	assert.Empty(t, s.Stylesheets())
}

func TestLoadInvalidDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "content/blog/bad.md", "---\ndescription: no title\ndate: 2025-07-01\n---\n")
	cfg := config.Default()
	cfg.CSS = nil

	_, err := Load(context.Background(), root, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrSchemaValidation))

	var verr *content.SchemaValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Field())
}

func TestLoadMissingStylesheet(t *testing.T) {
	root := t.TempDir()

	_, err := Load(context.Background(), root, config.Default())
	assert.Error(t, err)
}
