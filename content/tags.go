package content

import (
	"sort"
	"strings"
	"unicode"
)

// Tag groups the posts carrying it. Posts keep the order they were given in.
type Tag struct {
	Name  string
	Slug  string
	Posts []*Post
}

// CollectTags derives the tag index from post front-matter. Tags whose names slugify
// identically are merged under the first name seen.
func CollectTags(posts []*Post) []*Tag {
	bySlug := make(map[string]*Tag)
	for _, post := range posts {
		seen := make(map[string]bool)
		for _, name := range post.Tags {
			slug := Slugify(name)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true

			tag, ok := bySlug[slug]
			if !ok {
				tag = &Tag{Name: name, Slug: slug}
				bySlug[slug] = tag
			}
			tag.Posts = append(tag.Posts, post)
		}
	}

	tags := make([]*Tag, 0, len(bySlug))
	for _, tag := range bySlug {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags
}

// Slugify lowercases s and collapses every run of non-alphanumerics into a dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
