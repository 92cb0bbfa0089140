package diagram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Normalize fills the attributes a decoded drawing may omit with the same
// defaults new nodes and edges get, and replaces nil slices with empty
// ones.
func Normalize(d *Drawing) {
	if d == nil {
		return
	}
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}

	for i := range d.Nodes {
		n := &d.Nodes[i]
		if n.Label == "" {
			n.Label = DefaultLabel(i)
		}
		if n.Color == "" {
			n.Color = DefaultColor
		}
		if n.Shape == "" {
			n.Shape = ShapeCircle
		}
	}

	for i := range d.Edges {
		e := &d.Edges[i]
		if e.Color == "" {
			e.Color = DefaultColor
		}
		if e.Style == "" {
			e.Style = StyleSolid
		}
		if e.Direction == "" {
			e.Direction = DirNone
		}
	}
}

// Validate checks a drawing's attribute values and the structural
// invariants the editor maintains: endpoints in range, no self loops and
// no duplicate unordered pairs.
func Validate(d *Drawing) error {
	if d == nil {
		return errors.New("drawing is nil")
	}

	if err := validate.Struct(d); err != nil {
		return formatValidationError(err)
	}

	seen := make(map[[2]int]int)
	for i, e := range d.Edges {
		if e.A >= len(d.Nodes) || e.B >= len(d.Nodes) {
			return fmt.Errorf("edge %d: %w", i, ErrNoSuchNode)
		}
		if e.A == e.B {
			return fmt.Errorf("edge %d: %w", i, ErrSelfLoop)
		}
		key := [2]int{min(e.A, e.B), max(e.A, e.B)}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("edge %d duplicates edge %d: %w", i, prev, ErrDuplicateEdge)
		}
		seen[key] = i
	}

	return nil
}

// formatValidationError turns validator errors into one readable message
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
