package content

import (
	"path"
	"strings"

	"github.com/chaininsights/blog/config"
)

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Collection is a named set of documents sourced from Include and served under Prefix.
type Collection struct {
	Name    string
	Type    string
	Include string
	Prefix  string
}

func NewCollection(name string, c config.Collection) Collection {
	return Collection{
		Name:    name,
		Type:    c.Type,
		Include: c.Source.Include,
		Prefix:  c.Source.Prefix,
	}
}

// Match reports whether the slash-separated source path belongs to the collection.
func (c Collection) Match(source string) bool {
	if !markdownExts[path.Ext(source)] {
		return false
	}
	return globMatch(strings.Split(c.Include, "/"), strings.Split(source, "/"))
}

// RouteFor maps a source path to its URL: the static directory part of Include is
// replaced by Prefix and the extension dropped. A trailing "index" names its directory.
func (c Collection) RouteFor(source string) string {
	rel := strings.TrimSuffix(source, path.Ext(source))
	if dir := c.staticDir(); dir != "" {
		rel = strings.TrimPrefix(rel, dir+"/")
	}
	if rel == "index" {
		rel = ""
	}
	rel = strings.TrimSuffix(rel, "/index")

	route := path.Join("/", c.Prefix, rel)
	return route
}

// staticDir is the leading part of Include without wildcards ("blog" for "blog/**").
func (c Collection) staticDir() string {
	var parts []string
	for _, seg := range strings.Split(c.Include, "/") {
		if strings.ContainsAny(seg, "*?[") {
			break
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "/")
}

// globMatch matches path segments where "**" spans any number of segments and the
// other segments follow path.Match.
func globMatch(pattern, segs []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segs); i++ {
				if globMatch(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], segs[0])
		if err != nil || !ok {
			return false
		}
		pattern, segs = pattern[1:], segs[1:]
	}
	return len(segs) == 0
}
