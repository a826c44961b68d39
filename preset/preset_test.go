package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("github-pages")
	require.True(t, ok)
	assert.Equal(t, "github-pages", p.Name())

	_, ok = Lookup("vercel")
	assert.False(t, ok)

	assert.Equal(t, []string{"github-pages", "static"}, Names())
}

func TestGithubPagesWritesNoJekyll(t *testing.T) {
	dir := t.TempDir()
	p, _ := Lookup("github-pages")
	require.NoError(t, p.Finalize(dir))

	_, err := os.Stat(filepath.Join(dir, ".nojekyll"))
	assert.NoError(t, err)
}

func TestStaticIsNoop(t *testing.T) {
	dir := t.TempDir()
	p, _ := Lookup("static")
	require.NoError(t, p.Finalize(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
