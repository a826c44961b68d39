package assets

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaininsights/blog/config"
)

func writeFile(t *testing.T, p, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestCompileStylesheets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "css", "main.css"), `@import "tailwindcss";
@import "./base.css";

.post  {
  background: url(/blog/cover.png);
}
`)
	writeFile(t, filepath.Join(root, "assets", "css", "base.css"), "body {\n  margin: 0;\n}\n")

	cfg := config.Default()
	out, err := CompileStylesheets(root, cfg)
	require.NoError(t, err)
	require.Len(t, out, 1)

	css := out[0]
	assert.True(t, css.Stylesheet)
	assert.Regexp(t, regexp.MustCompile(`^_assets/main_[A-Za-z0-9]+\.css$`), css.OutputPath)
	assert.Equal(t, "/blog/"+css.OutputPath, css.PublicPath)

	body := string(css.Contents)
	assert.Contains(t, body, "tailwindcss")
	assert.Contains(t, body, "body{margin:0}")
	assert.Contains(t, body, "url(/blog/cover.png)")
	assert.NotContains(t, body, "base.css")
}

func TestURLSafeHash(t *testing.T) {
	assert.Equal(t, "AB12cd", urlSafeHash("A+B/12=cd"))
}

func TestCompileStylesheetsMissingFile(t *testing.T) {
	_, err := CompileStylesheets(t.TempDir(), config.Default())
	assert.Error(t, err)
}

func TestCompileStylesheetsUnresolvedImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "css", "main.css"), `@import "./missing.css";`)

	_, err := CompileStylesheets(root, config.Default())
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	err := Write(dir, []Asset{{OutputPath: "_assets/main_abc.css", Contents: []byte("a{}")}})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "_assets", "main_abc.css"))
	require.NoError(t, err)
	assert.Equal(t, "a{}", string(got))
}
