package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmmoran/viewgen/internal/model"
	"github.com/cmmoran/viewgen/internal/symbols"
)

// CollectFields flattens the non-static fields of classes, class order first,
// declaration order within each class.
func CollectFields(ctx context.Context, src symbols.SymbolSource, classes []model.ClassDescriptor) ([]model.FieldDescriptor, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: no classes selected", ErrEmptySelection)
	}

	out := make([]model.FieldDescriptor, 0, len(classes)*8)
	for _, c := range classes {
		fields, err := src.FieldsOf(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("fields of %s: %w", c, err)
		}
		for _, f := range fields {
			if f.IsStatic {
				continue
			}
			if f.DeclaringClass == "" {
				f.DeclaringClass = c.SimpleName
			}
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: selected classes have no instance fields", ErrEmptySelection)
	}
	return out, nil
}

// SelectFields looks up every selected field in collected and returns the
// inventory entries in selection order. A field selected twice is kept once.
// Selecting a field the inventory does not have is an error.
func SelectFields(collected, selected []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no fields selected", ErrEmptySelection)
	}

	inventory := make(map[string]model.FieldDescriptor, len(collected))
	for _, f := range collected {
		if _, ok := inventory[f.Key()]; !ok {
			inventory[f.Key()] = f
		}
	}

	var (
		out     = make([]model.FieldDescriptor, 0, len(selected))
		seen    = make(map[string]bool, len(selected))
		missing []string
	)
	for _, sf := range selected {
		key := sf.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		f, ok := inventory[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		out = append(out, f)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(missing, ", "))
	}
	return out, nil
}
