package generator

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/cmmoran/viewgen/internal/model"
)

// DefaultFieldSelection is every collected field except those carrying one of
// the excluded annotations. It backs "select all fields" requests.
func DefaultFieldSelection(collected []model.FieldDescriptor, excluded []string) []model.FieldDescriptor {
	return lo.Reject(collected, func(f model.FieldDescriptor, _ int) bool {
		return shouldOmitField(f, excluded)
	})
}

// shouldOmitField reports whether f carries any annotation named in excluded.
func shouldOmitField(f model.FieldDescriptor, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, a := range f.Annotations {
		for _, ex := range excluded {
			if AnnotationIs(a, ex) {
				return true
			}
		}
	}
	return false
}

// AnnotationName returns the (possibly qualified) name of a raw annotation.
//
//	@Schema(description = "x") → Schema
func AnnotationName(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == '(' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if end >= 0 {
		s = s[:end]
	}
	return s
}

// AnnotationIs matches a raw annotation against a simple or qualified name.
func AnnotationIs(raw, name string) bool {
	name = strings.TrimPrefix(name, "@")
	n := AnnotationName(raw)
	return n == name || strings.HasSuffix(n, "."+name) || strings.HasSuffix(name, "."+n)
}

// annotationAttributes parses the key = value pairs of an annotation. A single
// unnamed argument is returned under "value". Quoted values are unquoted.
func annotationAttributes(raw string) map[string]string {
	m := map[string]string{}
	open := strings.Index(raw, "(")
	end := strings.LastIndex(raw, ")")
	if open < 0 || end <= open {
		return m
	}

	for _, part := range splitTopLevel(raw[open+1:end], ',') {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			key, val = "value", part
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if uq, err := strconv.Unquote(val); err == nil {
			val = uq
		}
		if key != "" {
			m[key] = val
		}
	}
	return m
}

// splitTopLevel splits s on sep outside quotes, parentheses and braces.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts   []string
		depth   int
		inQuote bool
		escaped bool
		start   int
	)
	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '(' || r == '{' || r == '[':
			depth++
		case r == ')' || r == '}' || r == ']':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if strings.TrimSpace(s[start:]) != "" {
		parts = append(parts, s[start:])
	}
	return parts
}
