// Package symbols defines the read-only view of a project's classes that the
// generator consumes, plus helpers shared by its implementations.
package symbols

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmmoran/viewgen/internal/model"
)

var (
	ErrUnknownClass   = errors.New("unknown class")
	ErrAmbiguousClass = errors.New("ambiguous class name")
)

// SymbolSource enumerates candidate classes and their fields.
//
// FieldsOf returns static fields too, flagged with IsStatic; callers decide
// whether to keep them.
type SymbolSource interface {
	ListCandidateClasses(ctx context.Context, rootHint string) ([]model.ClassDescriptor, error)
	FieldsOf(ctx context.Context, class model.ClassDescriptor) ([]model.FieldDescriptor, error)
}

// FindClass resolves name (simple or qualified) against classes. A simple name
// shared by several classes is ambiguous.
func FindClass(classes []model.ClassDescriptor, name string) (model.ClassDescriptor, error) {
	var (
		found model.ClassDescriptor
		hits  int
	)
	for _, c := range classes {
		if c.QualifiedName == name {
			return c, nil
		}
		if c.SimpleName == name {
			found = c
			hits++
		}
	}
	switch hits {
	case 0:
		return model.ClassDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	case 1:
		return found, nil
	default:
		return model.ClassDescriptor{}, fmt.Errorf("%w: %s matches %d classes", ErrAmbiguousClass, name, hits)
	}
}

// ResolveClasses maps every name with FindClass, keeping order and dropping repeats.
func ResolveClasses(classes []model.ClassDescriptor, names []string) ([]model.ClassDescriptor, error) {
	out := make([]model.ClassDescriptor, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		c, err := FindClass(classes, n)
		if err != nil {
			return nil, err
		}
		if seen[c.QualifiedName] {
			continue
		}
		seen[c.QualifiedName] = true
		out = append(out, c)
	}
	return out, nil
}
