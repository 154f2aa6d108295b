package generator

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/cmmoran/viewgen/internal/model"
)

// autoImported is the namespace every Java source sees without an import.
const autoImported = "java.lang"

var javaPrimitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
	"var":     true,
}

// IsPrimitive reports whether t names a Java primitive type.
func IsPrimitive(t string) bool {
	return javaPrimitives[strings.TrimSpace(t)]
}

// NeedsImport reports whether a fully qualified raw type (no type arguments)
// requires an import statement.
func NeedsImport(qualified string) bool {
	t := strings.TrimSpace(qualified)
	if t == "" || IsPrimitive(t) {
		return false
	}
	i := strings.LastIndex(t, ".")
	if i <= 0 {
		return false
	}
	return t[:i] != autoImported
}

// RawType strips type arguments, array brackets, varargs and wildcard bounds.
//
//	java.util.List<java.lang.String>[] → java.util.List
//	? extends com.acme.Foo             → com.acme.Foo
func RawType(t string) string {
	t = unwildcard(t)
	if i := strings.Index(t, "<"); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "...")
	for strings.HasSuffix(t, "[]") {
		t = strings.TrimSpace(strings.TrimSuffix(t, "[]"))
	}
	return strings.TrimSpace(t)
}

// TypeArguments returns the top-level arguments of a generic type, split on
// commas outside nested brackets.
//
//	Map<String, List<Long>> → [String, List<Long>]
func TypeArguments(t string) []string {
	t = unwildcard(t)
	open := strings.Index(t, "<")
	end := strings.LastIndex(t, ">")
	if open < 0 || end <= open {
		return nil
	}
	inner := t[open+1 : end]

	var (
		args  []string
		depth int
		start int
	)
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(inner[start:]); last != "" {
		args = append(args, last)
	}
	return args
}

func unwildcard(t string) string {
	t = strings.TrimSpace(t)
	if !strings.HasPrefix(t, "?") {
		return t
	}
	t = strings.TrimSpace(strings.TrimPrefix(t, "?"))
	for _, kw := range []string{"extends", "super"} {
		if strings.HasPrefix(t, kw+" ") {
			return strings.TrimSpace(strings.TrimPrefix(t, kw))
		}
	}
	return ""
}

// TypeImports returns the imports a qualified type expression needs, type
// arguments included.
func TypeImports(qualified string) []string {
	var out []string
	if raw := RawType(qualified); NeedsImport(raw) {
		out = append(out, raw)
	}
	for _, arg := range TypeArguments(qualified) {
		out = append(out, TypeImports(arg)...)
	}
	return out
}

// ImportOptions are the fixed inputs of import resolution.
type ImportOptions struct {
	Framework           []string // always imported
	Projection          string   // imported only with AutoSelect
	AutoSelect          bool
	ImportSourceClasses bool
}

// ResolveImports builds the sorted, duplicate-free import list of a view.
func ResolveImports(fields []model.FieldDescriptor, classes []model.ClassDescriptor, o ImportOptions) []string {
	set := make(map[string]struct{})
	add := func(imp string) {
		if imp = strings.TrimSpace(imp); imp != "" {
			set[imp] = struct{}{}
		}
	}

	for _, imp := range o.Framework {
		add(imp)
	}
	if o.AutoSelect {
		add(o.Projection)
	}
	for _, f := range fields {
		for _, imp := range TypeImports(f.ImportType()) {
			add(imp)
		}
	}
	if o.ImportSourceClasses {
		for _, c := range classes {
			if NeedsImport(c.QualifiedName) {
				add(c.QualifiedName)
			}
		}
	}

	imports := lo.Keys(set)
	slices.Sort(imports)
	return imports
}
