package transform

import (
	"fmt"
	"slices"

	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// BatchTransform is a what-if edit applied to every matching case of a batch
// before it runs, such as "as a first-time buyer" or "with 104 shared care
// nights". Transforms never mutate their input.
type BatchTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.Configuration) (*domain.Configuration, error)

	// Name returns a short identifier for this transform (e.g., "set_buyer").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform against base without applying it.
	Validate(base *domain.Configuration) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *domain.Configuration, transforms []BatchTransform) (*domain.Configuration, error) {
	if base == nil {
		return nil, fmt.Errorf("base configuration cannot be nil")
	}

	if len(transforms) == 0 {
		return clone(base), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms for report headings.
func Describe(transforms []BatchTransform) string {
	var out string
	for i, t := range transforms {
		if i > 0 {
			out += "; "
		}
		out += t.Description()
	}
	return out
}

// clone copies the case slices; requests are values, so this is a deep copy.
func clone(c *domain.Configuration) *domain.Configuration {
	return &domain.Configuration{
		Metadata:    c.Metadata,
		Levy:        slices.Clone(c.Levy),
		Maintenance: slices.Clone(c.Maintenance),
	}
}

// Selector restricts a transform to one named case. Empty matches every case.
type Selector struct {
	Case string
}

func (s Selector) matches(name string) bool {
	return s.Case == "" || s.Case == name
}

func (s Selector) scope() string {
	if s.Case == "" {
		return ""
	}
	return fmt.Sprintf(" for %q", s.Case)
}

// requireLevyMatch errors when the selector names no levy case.
func (s Selector) requireLevyMatch(transform string, base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(transform, "validate", "base configuration cannot be nil", nil)
	}
	for _, c := range base.Levy {
		if s.matches(c.Name) {
			return nil
		}
	}
	return NewTransformError(transform, "validate", "no levy case"+s.scope()+" to modify", nil)
}

// requireMaintenanceMatch errors when the selector names no maintenance case.
func (s Selector) requireMaintenanceMatch(transform string, base *domain.Configuration) error {
	if base == nil {
		return NewTransformError(transform, "validate", "base configuration cannot be nil", nil)
	}
	for _, c := range base.Maintenance {
		if s.matches(c.Name) {
			return nil
		}
	}
	return NewTransformError(transform, "validate", "no maintenance case"+s.scope()+" to modify", nil)
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
