package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// DefaultAuthor is applied to posts whose front-matter omits author.
const DefaultAuthor = "Chain Insights Team"

// BlogPost is the validated front-matter of a blog document.
type BlogPost struct {
	Title       string   `json:"title" yaml:"title" jsonschema:"title=Title"`
	Description string   `json:"description" yaml:"description" jsonschema:"title=Description"`
	Date        string   `json:"date" yaml:"date" jsonschema:"title=Date,example=2025-07-15"`
	Tags        []string `json:"tags,omitempty" yaml:"tags" default:"[]" jsonschema:"title=Tags"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty" jsonschema:"title=Image"`
	Author      string   `json:"author,omitempty" yaml:"author" default:"Chain Insights Team" jsonschema:"title=Author,default=Chain Insights Team"`
}

const schemaURL = "embedded://blog-post"

var (
	schemaOnce     sync.Once
	schemaDoc      []byte
	schemaCompiled *jschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema for BlogPost front-matter.
func Schema() ([]byte, error) {
	loadSchema()
	return schemaDoc, schemaErr
}

func loadSchema() {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			Anonymous:                 true,
			AllowAdditionalProperties: true,
			DoNotReference:            true,
			ExpandedStruct:            true,
		}
		s := r.Reflect(&BlogPost{})
		// santhosh-tekuri/jsonschema validates draft-07 without extra vocabularies.
		s.Version = "http://json-schema.org/draft-07/schema#"
		s.Title = "Blog post"
		s.Description = "Front-matter of a document in the blog collection"

		schemaDoc, schemaErr = json.MarshalIndent(s, "", "  ")
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "marshal blog post schema")
			return
		}

		var doc interface{}
		if err := json.Unmarshal(schemaDoc, &doc); err != nil {
			schemaErr = errors.Wrap(err, "unmarshal blog post schema")
			return
		}

		compiler := jschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = errors.Wrap(err, "add blog post schema")
			return
		}
		schemaCompiled, schemaErr = compiler.Compile(schemaURL)
		schemaErr = errors.Wrap(schemaErr, "compile blog post schema")
	})
}

// Validate checks front-matter of document against the BlogPost schema and returns the
// record with defaults applied to absent keys. Unknown keys are dropped.
func Validate(document string, fm map[string]interface{}) (BlogPost, error) {
	loadSchema()
	if schemaErr != nil {
		return BlogPost{}, schemaErr
	}

	data, err := json.Marshal(normalize(fm))
	if err != nil {
		return BlogPost{}, invalidDocument(document, fmt.Sprintf("front-matter is not representable as JSON: %v", err))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return BlogPost{}, errors.Wrap(err, "decode front-matter")
	}

	if err := schemaCompiled.Validate(doc); err != nil {
		var verr *jschema.ValidationError
		if !errors.As(err, &verr) {
			return BlogPost{}, errors.Wrapf(err, "validate %s", document)
		}
		return BlogPost{}, &SchemaValidationError{Document: document, Issues: collectIssues(verr, nil)}
	}

	// Defaults fill only the keys the document leaves out; an explicit "" is kept.
	var post BlogPost
	if err := defaults.Set(&post); err != nil {
		return BlogPost{}, errors.Wrap(err, "apply blog post defaults")
	}
	if err := json.Unmarshal(data, &post); err != nil {
		return BlogPost{}, invalidDocument(document, err.Error())
	}

	return post, nil
}

func invalidDocument(document, reason string) *SchemaValidationError {
	return &SchemaValidationError{
		Document: document,
		Issues:   []FieldIssue{{Reason: reason}},
	}
}

func collectIssues(e *jschema.ValidationError, out []FieldIssue) []FieldIssue {
	if len(e.Causes) > 0 {
		for _, cause := range e.Causes {
			out = collectIssues(cause, out)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
		return out
	}

	field := fieldName(e.InstanceLocation)
	switch k := e.ErrorKind.(type) {
	case *kind.Required:
		for _, missing := range k.Missing {
			out = append(out, FieldIssue{Field: joinField(field, missing), Reason: "required field is missing"})
		}
	case *kind.Type:
		out = append(out, FieldIssue{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s", strings.Join(k.Want, " or "), k.Got),
		})
	default:
		out = append(out, FieldIssue{Field: field, Reason: "invalid value"})
	}
	return out
}

// fieldName renders an instance location like ["tags", "1"] as "tags[1]".
func fieldName(location []string) string {
	var b strings.Builder
	for _, seg := range location {
		if _, err := strconv.Atoi(seg); err == nil && b.Len() > 0 {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// normalize turns decoded YAML maps into JSON-compatible values.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = normalize(val)
		}
		return s
	default:
		return v
	}
}
