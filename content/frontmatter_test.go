package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("---\ntitle: Hello\ntags: [a, b]\n---\n\n# Heading\n\ntext\n"))
	require.NoError(t, err)

	assert.Equal(t, "Hello", fm["title"])
	assert.Equal(t, []interface{}{"a", "b"}, fm["tags"])
	assert.Equal(t, "# Heading\n\ntext\n", string(body))
}

func TestParseFrontMatterScalars(t *testing.T) {
	fm, _, err := ParseFrontMatter([]byte("---\ndate: 2025-07-15\ntags: [x, y]\ndraft: true\nquoted: \"2025-07-16\"\n---\n"))
	require.NoError(t, err)

	assert.Equal(t, "2025-07-15", fm["date"])
	assert.Equal(t, "2025-07-16", fm["quoted"])
	assert.Equal(t, []interface{}{"x", "y"}, fm["tags"])
	assert.Equal(t, true, fm["draft"])
}

func TestParseFrontMatterCRLF(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("---\r\ntitle: Hello\r\n---\r\nbody\r\n"))
	require.NoError(t, err)

	assert.Equal(t, "Hello", fm["title"])
	assert.Equal(t, "body\n", string(body))
}

func TestParseFrontMatterAbsent(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("# Just markdown\n"))
	require.NoError(t, err)

	assert.Empty(t, fm)
	assert.Equal(t, "# Just markdown\n", string(body))
}

func TestParseFrontMatterEmpty(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("---\n---\nbody"))
	require.NoError(t, err)

	assert.Empty(t, fm)
	assert.Equal(t, "body", string(body))
}

func TestParseFrontMatterErrors(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: never closed\n"))
	assert.Error(t, err)

	_, _, err = ParseFrontMatter([]byte("---\n- a\n- b\n---\n"))
	assert.Error(t, err)

	_, _, err = ParseFrontMatter([]byte("---\ntitle: [unbalanced\n---\n"))
	assert.Error(t, err)
}
