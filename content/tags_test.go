package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Go":               "go",
		"Machine Learning": "machine-learning",
		"  spaced  out ":   "spaced-out",
		"C++ / Rust":       "c-rust",
		"$CIA":             "cia",
		"!!!":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCollectTags(t *testing.T) {
	a := &Post{BlogPost: BlogPost{Title: "A", Tags: []string{"Go", "agents"}}}
	b := &Post{BlogPost: BlogPost{Title: "B", Tags: []string{"go", "Go"}}}
	c := &Post{BlogPost: BlogPost{Title: "C", Tags: []string{}}}

	tags := CollectTags([]*Post{a, b, c})
	require.Len(t, tags, 2)

	assert.Equal(t, "agents", tags[0].Slug)
	assert.Equal(t, []*Post{a}, tags[0].Posts)

	assert.Equal(t, "go", tags[1].Slug)
	assert.Equal(t, "Go", tags[1].Name)
	assert.Equal(t, []*Post{a, b}, tags[1].Posts)
}
