package content

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSchemaValidation is matched by every *SchemaValidationError.
	ErrSchemaValidation = errors.New("blog post schema validation failed")

	// ErrDuplicateRoute is returned when two documents resolve to the same route.
	ErrDuplicateRoute = errors.New("duplicate content route")
)

// FieldIssue names a single offending front-matter field.
type FieldIssue struct {
	Field  string
	Reason string
}

// SchemaValidationError reports a content document whose front-matter does not match
// the BlogPost shape. It aborts the build.
type SchemaValidationError struct {
	Document string
	Issues   []FieldIssue
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Reason))
	}
	return fmt.Sprintf("%s: %s: %s", e.Document, ErrSchemaValidation, strings.Join(parts, "; "))
}

func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Field returns the first offending field.
func (e *SchemaValidationError) Field() string {
	if len(e.Issues) == 0 {
		return ""
	}
	return e.Issues[0].Field
}
