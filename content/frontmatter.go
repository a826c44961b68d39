package content

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// ParseFrontMatter splits raw into its YAML front-matter and markdown body. The
// front-matter must open on the first line with "---" and close with a line holding
// only "---". Documents without it yield an empty map and the whole input as body.
func ParseFrontMatter(raw []byte) (map[string]interface{}, []byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	fm := map[string]interface{}{}

	first, rest, found := bytes.Cut(raw, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimSpace(first), delimiter) {
		return fm, raw, nil
	}

	var header, body []byte
	lines := rest
	for {
		line, tail, more := bytes.Cut(lines, []byte("\n"))
		if bytes.Equal(bytes.TrimRight(line, " \t"), delimiter) {
			header = rest[:len(rest)-len(lines)]
			body = tail
			break
		}
		if !more {
			return nil, nil, errors.New("front-matter is not closed by ---")
		}
		lines = tail
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(header, &doc); err != nil {
		return nil, nil, errors.Wrap(err, "parse front-matter")
	}
	if len(doc.Content) == 0 {
		return fm, bytes.TrimLeft(body, "\n"), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return fm, bytes.TrimLeft(body, "\n"), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, errors.Errorf("front-matter must be a mapping, line %d", root.Line)
	}

	v, err := nodeValue(root)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse front-matter")
	}
	return v.(map[string]interface{}), bytes.TrimLeft(body, "\n"), nil
}

// nodeValue converts a YAML 1.2 node into plain Go values. Timestamps keep their
// source text so dates stay strings.
func nodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return v, nil
	default:
		return nil, errors.Errorf("unsupported YAML node at line %d", n.Line)
	}
}
